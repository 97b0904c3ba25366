package models

import (
	"github.com/google/uuid"
)

// LinkStatus is the reading state of a link
type LinkStatus string

const (
	LinkStatusUnread   LinkStatus = "unread"
	LinkStatusRead     LinkStatus = "read"
	LinkStatusArchived LinkStatus = "archived"
)

// IsValid reports whether s is one of the known link statuses
func (s LinkStatus) IsValid() bool {
	switch s {
	case LinkStatusUnread, LinkStatusRead, LinkStatusArchived:
		return true
	}
	return false
}

// Link represents a saved URL owned by exactly one user
type Link struct {
	BaseModel
	UserID     uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index"`
	URL        string     `json:"url" gorm:"not null;size:2000" validate:"required,max=2000"`
	Title      string     `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Notes      *string    `json:"notes" gorm:"size:250"`
	Status     LinkStatus `json:"status" gorm:"type:varchar(20);not null;default:'unread'"`
	IsFavorite bool       `json:"isFavorite" gorm:"not null;default:false"`
	IsPrivate  bool       `json:"isPrivate" gorm:"not null;default:false"`
}

// TableName returns the table name for Link
func (Link) TableName() string {
	return "links"
}
