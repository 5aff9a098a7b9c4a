package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (c *Card) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CardWithBoard is a card joined with the board that owns its column.
type CardWithBoard struct {
	Card
	BoardID     uuid.UUID
	OwnerUserID uuid.UUID
}

// CardUpdate holds the editable card fields. Nil fields are left untouched.
type CardUpdate struct {
	Title       *string
	Description *string
}

func (u CardUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil
}
