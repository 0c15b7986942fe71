package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPageID struct {
	PageID uuid.UUID
}

func (s ByPageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_id = ?", s.PageID)
}

type ByPageIDs struct {
	PageIDs []uuid.UUID
}

func (s ByPageIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_id IN ?", s.PageIDs)
}

type OpenOnly struct{}

func (s OpenOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_open = ?", true)
}
