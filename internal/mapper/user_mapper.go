package mapper

import (
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:             u.Id,
		Email:          u.Email,
		FullName:       u.FullName,
		PasswordHash:   u.PasswordHash,
		GoogleId:       u.GoogleId,
		Role:           u.Role,
		Status:         u.Status,
		EmailVerified:  u.EmailVerified,
		OtpHash:        u.OtpHash,
		OtpExpiresAt:   u.OtpExpiresAt,
		ResetTokenHash: u.ResetTokenHash,
		ResetExpiresAt: u.ResetExpiresAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:             u.Id,
		Email:          u.Email,
		FullName:       u.FullName,
		PasswordHash:   u.PasswordHash,
		GoogleId:       u.GoogleId,
		Role:           u.Role,
		Status:         u.Status,
		EmailVerified:  u.EmailVerified,
		OtpHash:        u.OtpHash,
		OtpExpiresAt:   u.OtpExpiresAt,
		ResetTokenHash: u.ResetTokenHash,
		ResetExpiresAt: u.ResetExpiresAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
