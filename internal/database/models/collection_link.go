package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionLink is a membership row between a collection and a link.
// The composite unique index keeps a link from being added twice to the
// same collection.
type CollectionLink struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CollectionID uuid.UUID  `json:"collectionId" gorm:"type:uuid;not null;index;uniqueIndex:idx_collection_links_pair"`
	LinkID       uuid.UUID  `json:"linkId" gorm:"type:uuid;not null;uniqueIndex:idx_collection_links_pair"`
	CreatedAt    time.Time  `json:"createdAt"`
	Collection   Collection `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Link         Link       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID if not already set
func (cl *CollectionLink) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for CollectionLink
func (CollectionLink) TableName() string {
	return "collection_links"
}
