package model

import (
	"time"

	"gorm.io/gorm"
)

// Meeting represents one IETF meeting. The meeting number is the natural
// key used by every remote endpoint that is scoped to a meeting.
type Meeting struct {
	gorm.Model
	Number    string `gorm:"uniqueIndex;not null"`
	City      string
	Country   string
	Venue     string
	VenueAddr string
	Date      time.Time
	TimeZone  string
	// RemoteUpdated is the last-modified marker reported by the meeting
	// list endpoint, not the local row timestamp.
	RemoteUpdated time.Time
}

// Zone resolves the meeting's IANA time zone, falling back to UTC when the
// remote value is absent or unknown.
func (m *Meeting) Zone() *time.Location {
	if m.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(m.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
