package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is a scheduled working-group session within a meeting.
type Session struct {
	gorm.Model
	RemoteID int64 `gorm:"uniqueIndex;not null"`
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
	Status   string
	IsBOF    bool
	// Day and TimeRange are pre-formatted bucket strings in the meeting's
	// local time zone, e.g. "Monday" and "09:30-11:30".
	Day       string
	TimeRange string

	AgendaURL  string
	MinutesURL string
	// Recording is fetched lazily and never overwritten once set.
	Recording string

	// Favorite and CalendarEventID are user-owned; synchronization must
	// not touch them.
	Favorite        bool
	CalendarEventID string

	GroupID    *uint
	Group      *Group
	LocationID *uint
	Location   *Location
	MeetingID  uint
	Meeting    *Meeting
}
