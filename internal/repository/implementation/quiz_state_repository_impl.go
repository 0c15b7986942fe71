package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/mapper"
	"gammanotes-be/internal/model"
	"gammanotes-be/internal/repository/contract"
	"gammanotes-be/internal/repository/specification"
)

type QuizStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizStateMapper
}

func NewQuizStateRepository(db *gorm.DB) contract.QuizStateRepository {
	return &QuizStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizStateMapper(),
	}
}

func (r *QuizStateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuizStateRepositoryImpl) Create(ctx context.Context, state *entity.QuizState) error {
	m := r.mapper.ToModel(state)
	if m.Version == 0 {
		m.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*state = *r.mapper.ToEntity(m)
	return nil
}

// UpdateVersioned performs a compare-and-swap on the version column so two
// concurrent answer submissions cannot silently overwrite each other.
func (r *QuizStateRepositoryImpl) UpdateVersioned(ctx context.Context, state *entity.QuizState) error {
	m := r.mapper.ToModel(state)
	res := r.db.WithContext(ctx).Model(&model.QuizState{}).
		Where("id = ? AND version = ?", m.Id, m.Version).
		Updates(map[string]interface{}{
			"name":                   m.Name,
			"answers":                m.Answers,
			"evaluations":            m.Evaluations,
			"status":                 m.Status,
			"current_question_index": m.CurrentQuestionIndex,
			"score":                  m.Score,
			"completed_at":           m.CompletedAt,
			"version":                m.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}
	state.Version = m.Version + 1
	return nil
}

func (r *QuizStateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.QuizState{}, id).Error
}

func (r *QuizStateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizState, error) {
	var m model.QuizState
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuizStateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizState, error) {
	var models []*model.QuizState
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuizStateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.QuizState{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
