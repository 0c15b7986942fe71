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

type StudyCardSetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudyCardSetMapper
}

func NewStudyCardSetRepository(db *gorm.DB) contract.StudyCardSetRepository {
	return &StudyCardSetRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudyCardSetMapper(),
	}
}

func (r *StudyCardSetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StudyCardSetRepositoryImpl) Create(ctx context.Context, set *entity.StudyCardSet) error {
	m := r.mapper.ToModel(set)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*set = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyCardSetRepositoryImpl) Update(ctx context.Context, set *entity.StudyCardSet) error {
	m := r.mapper.ToModel(set)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*set = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyCardSetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StudyCardSet{}, id).Error
}

func (r *StudyCardSetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyCardSet, error) {
	var m model.StudyCardSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StudyCardSetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyCardSet, error) {
	var models []*model.StudyCardSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type StudyGuideRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudyGuideMapper
}

func NewStudyGuideRepository(db *gorm.DB) contract.StudyGuideRepository {
	return &StudyGuideRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudyGuideMapper(),
	}
}

func (r *StudyGuideRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StudyGuideRepositoryImpl) Create(ctx context.Context, guide *entity.StudyGuide) error {
	m := r.mapper.ToModel(guide)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*guide = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyGuideRepositoryImpl) Update(ctx context.Context, guide *entity.StudyGuide) error {
	m := r.mapper.ToModel(guide)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*guide = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyGuideRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StudyGuide{}, id).Error
}

func (r *StudyGuideRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyGuide, error) {
	var m model.StudyGuide
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StudyGuideRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyGuide, error) {
	var models []*model.StudyGuide
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
