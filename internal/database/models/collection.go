package models

import (
	"github.com/google/uuid"
)

// Collection groups a user's links. A public collection may only surface
// public links; a private one is invisible to everyone but its owner.
type Collection struct {
	BaseModel
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"not null;size:50" validate:"required,min=1,max=50"`
	Description *string   `json:"description" gorm:"size:250"`
	Color       string    `json:"color" gorm:"not null;size:20" validate:"required,hexcolor"`
	IsPrivate   bool      `json:"isPrivate" gorm:"not null;default:false"`
}

// TableName returns the table name for Collection
func (Collection) TableName() string {
	return "collections"
}
