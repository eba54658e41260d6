package model

import "gorm.io/gorm"

// Presentation is a slide deck attached to a session.
type Presentation struct {
	gorm.Model
	ResourceURI string `gorm:"uniqueIndex;not null"`
	Name        string
	Rev         string
	Title       string
	Order       int `gorm:"column:sort_order"`
	SessionID   uint
	Session     *Session
}
