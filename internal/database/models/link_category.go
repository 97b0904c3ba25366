package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LinkCategory is a membership row between a link and a category
type LinkCategory struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	LinkID     uuid.UUID `json:"linkId" gorm:"type:uuid;not null;index"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"createdAt"`
	Link       Link      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Category   Category  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID if not already set
func (lc *LinkCategory) BeforeCreate(tx *gorm.DB) error {
	if lc.ID == uuid.Nil {
		lc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for LinkCategory
func (LinkCategory) TableName() string {
	return "link_categories"
}
