package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Playlist struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	Name    string         `gorm:"not null"`
	SongIDs datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	Account Account `gorm:"foreignKey:AccountID"`
}
