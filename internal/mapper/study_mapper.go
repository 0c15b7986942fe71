package mapper

import (
	"encoding/json"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/model"
	"gammanotes-be/pkg/completion"
)

type StudyCardSetMapper struct{}

func NewStudyCardSetMapper() *StudyCardSetMapper {
	return &StudyCardSetMapper{}
}

func (m *StudyCardSetMapper) ToEntity(s *model.StudyCardSet) *entity.StudyCardSet {
	if s == nil {
		return nil
	}

	var cards []completion.Card
	if len(s.Cards) > 0 {
		_ = json.Unmarshal(s.Cards, &cards)
	}

	return &entity.StudyCardSet{
		Id:         s.Id,
		UserId:     s.UserId,
		NotebookId: s.NotebookId,
		Name:       s.Name,
		Cards:      cards,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (m *StudyCardSetMapper) ToModel(s *entity.StudyCardSet) *model.StudyCardSet {
	if s == nil {
		return nil
	}

	cards, _ := json.Marshal(s.Cards)

	return &model.StudyCardSet{
		Id:         s.Id,
		UserId:     s.UserId,
		NotebookId: s.NotebookId,
		Name:       s.Name,
		Cards:      cards,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (m *StudyCardSetMapper) ToEntities(sets []*model.StudyCardSet) []*entity.StudyCardSet {
	entities := make([]*entity.StudyCardSet, len(sets))
	for i, s := range sets {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type StudyGuideMapper struct{}

func NewStudyGuideMapper() *StudyGuideMapper {
	return &StudyGuideMapper{}
}

func (m *StudyGuideMapper) ToEntity(g *model.StudyGuide) *entity.StudyGuide {
	if g == nil {
		return nil
	}

	var sections []completion.Card
	if len(g.Sections) > 0 {
		_ = json.Unmarshal(g.Sections, &sections)
	}

	return &entity.StudyGuide{
		Id:         g.Id,
		UserId:     g.UserId,
		NotebookId: g.NotebookId,
		Name:       g.Name,
		Sections:   sections,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func (m *StudyGuideMapper) ToModel(g *entity.StudyGuide) *model.StudyGuide {
	if g == nil {
		return nil
	}

	sections, _ := json.Marshal(g.Sections)

	return &model.StudyGuide{
		Id:         g.Id,
		UserId:     g.UserId,
		NotebookId: g.NotebookId,
		Name:       g.Name,
		Sections:   sections,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func (m *StudyGuideMapper) ToEntities(guides []*model.StudyGuide) []*entity.StudyGuide {
	entities := make([]*entity.StudyGuide, len(guides))
	for i, g := range guides {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
