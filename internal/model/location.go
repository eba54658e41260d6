package model

import "gorm.io/gorm"

const (
	// DefaultLevelName is used when a schedule payload omits the floor name.
	DefaultLevelName = "Uncategorized"
)

// Location is a room or venue area within a meeting.
type Location struct {
	gorm.Model
	RemoteID  int64 `gorm:"uniqueIndex;not null"`
	Name      string
	LevelName string
	LevelSort int
	MapURL    string
	X         float64
	Y         float64
	MeetingID uint
	Meeting   *Meeting
}
