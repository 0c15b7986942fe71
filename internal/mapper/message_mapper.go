package mapper

import (
	"encoding/json"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/model"
	"gammanotes-be/pkg/completion"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var sections []completion.Section
	if len(msg.Sections) > 0 {
		_ = json.Unmarshal(msg.Sections, &sections)
	}
	var fileRefs []string
	if len(msg.FileRefs) > 0 {
		_ = json.Unmarshal(msg.FileRefs, &fileRefs)
	}

	return &entity.Message{
		Id:        msg.Id,
		PageId:    msg.PageId,
		UserId:    msg.UserId,
		Tag:       msg.Tag,
		Text:      msg.Text,
		Sections:  sections,
		FileRefs:  fileRefs,
		Position:  msg.Position,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	out := &model.Message{
		Id:        msg.Id,
		PageId:    msg.PageId,
		UserId:    msg.UserId,
		Tag:       msg.Tag,
		Text:      msg.Text,
		Position:  msg.Position,
		CreatedAt: msg.CreatedAt,
	}

	if msg.Sections != nil {
		if raw, err := json.Marshal(msg.Sections); err == nil {
			out.Sections = raw
		}
	}
	if msg.FileRefs != nil {
		if raw, err := json.Marshal(msg.FileRefs); err == nil {
			out.FileRefs = raw
		}
	}

	return out
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
