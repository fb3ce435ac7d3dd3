package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Song struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	Title  string `gorm:"not null"`
	Artist string
	Tags   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	// Inactive songs stay in the catalog but are hidden from the audience page.
	Active bool `gorm:"default:true"`

	Account Account `gorm:"foreignKey:AccountID"`
}
