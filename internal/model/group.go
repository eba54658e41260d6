package model

import "gorm.io/gorm"

// Group is an IETF working group (or BOF). A nil Area means the group hangs
// off the implicit "ietf" area.
type Group struct {
	gorm.Model
	Acronym string `gorm:"uniqueIndex;not null"`
	Name    string
	State   string // active, bof, proposed
	Type    string
	AreaID  *uint
	Area    *Area
	// Favorite is user-set and is never written by synchronization.
	Favorite bool
}
