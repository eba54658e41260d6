// Package datatracker holds the wire shapes of the datatracker REST API and
// the meeting agenda payloads.
package datatracker

// PageMeta is the pagination envelope of the /api/v1 list endpoints.
type PageMeta struct {
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Next       string `json:"next"`
	Previous   string `json:"previous"`
	TotalCount int    `json:"total_count"`
}

// MeetingPage is one page of /api/v1/meeting/meeting/?type=ietf.
type MeetingPage struct {
	Meta    PageMeta        `json:"meta"`
	Objects []MeetingObject `json:"objects"`
}

type MeetingObject struct {
	Number    string `json:"number"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Date      string `json:"date"` // yyyy-MM-dd
	TimeZone  string `json:"time_zone"`
	VenueName string `json:"venue_name"`
	VenueAddr string `json:"venue_addr"`
	Updated   string `json:"updated"` // RFC3339
}
