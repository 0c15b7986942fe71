package mapper

import (
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/model"
)

type PageMapper struct{}

func NewPageMapper() *PageMapper {
	return &PageMapper{}
}

func (m *PageMapper) ToEntity(p *model.Page) *entity.Page {
	if p == nil {
		return nil
	}
	return &entity.Page{
		Id:         p.Id,
		NotebookId: p.NotebookId,
		UserId:     p.UserId,
		Title:      p.Title,
		Content:    p.Content,
		Position:   p.Position,
		IsOpen:     p.IsOpen,
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *PageMapper) ToModel(p *entity.Page) *model.Page {
	if p == nil {
		return nil
	}
	return &model.Page{
		Id:         p.Id,
		NotebookId: p.NotebookId,
		UserId:     p.UserId,
		Title:      p.Title,
		Content:    p.Content,
		Position:   p.Position,
		IsOpen:     p.IsOpen,
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *PageMapper) ToEntities(pages []*model.Page) []*entity.Page {
	entities := make([]*entity.Page, len(pages))
	for i, p := range pages {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
