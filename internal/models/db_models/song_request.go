package db_models

import (
	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusNew       RequestStatus = "new"
	RequestStatusPlayed    RequestStatus = "played"
	RequestStatusDismissed RequestStatus = "dismissed"
)

type SongRequest struct {
	BaseModel
	AccountID uuid.UUID  `gorm:"index"`
	SongID    *uuid.UUID `gorm:"index"` // nil for free-text requests

	SongTitle     string // snapshot at request time
	RequesterName string
	Dedication    string

	Status RequestStatus `gorm:"type:request_status;index;default:'new'"`

	Account Account `gorm:"foreignKey:AccountID"`
	Song    *Song   `gorm:"foreignKey:SongID"`
}
