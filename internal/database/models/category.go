package models

import (
	"github.com/google/uuid"
)

// Category labels a user's links. Names are unique per owner (case-sensitive).
type Category struct {
	BaseModel
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_user_name"`
	Name   string    `json:"name" gorm:"not null;size:50;uniqueIndex:idx_categories_user_name" validate:"required,min=1,max=50"`
	Color  string    `json:"color" gorm:"not null;size:20" validate:"required,hexcolor"`
}

// TableName returns the table name for Category
func (Category) TableName() string {
	return "categories"
}
