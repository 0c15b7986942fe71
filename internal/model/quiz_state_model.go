package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizState struct {
	Id                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               uuid.UUID  `gorm:"type:uuid;not null;index"`
	NotebookId           *uuid.UUID `gorm:"type:uuid;index"`
	Name                 string     `gorm:"type:varchar(255);not null"`
	Questions            datatypes.JSON `gorm:"type:jsonb;not null"`
	Answers              datatypes.JSON `gorm:"type:jsonb"`
	Evaluations          datatypes.JSON `gorm:"type:jsonb"`
	Status               string     `gorm:"type:varchar(32);not null;default:'not_started'"`
	CurrentQuestionIndex int        `gorm:"not null;default:0"`
	Score                int        `gorm:"not null;default:0"`
	SourcePages          datatypes.JSON `gorm:"type:jsonb"`
	CompletedAt          *time.Time
	Version              int       `gorm:"not null;default:1"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (QuizState) TableName() string {
	return "quiz_states"
}
