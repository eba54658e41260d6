package model

import (
	"time"

	"gorm.io/gorm"
)

// Area is a parent grouping of working groups (an IETF area). Created on
// demand when a schedule payload references it.
type Area struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	RemoteID    int64
	Description string
	Modified    time.Time
}
