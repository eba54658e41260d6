package datatracker

// Schedule is the agenda.json payload: the meeting number mapped to a flat
// list of heterogeneous entries discriminated by objtype.
type Schedule map[string][]ScheduleEntry

// Entry objtype discriminators.
const (
	ObjTypeLocation = "location"
	ObjTypeParent   = "parent"
	ObjTypeSession  = "session"
)

// ScheduleEntry is one agenda.json entry. Only the fields matching the
// entry's ObjType are populated.
type ScheduleEntry struct {
	ObjType string `json:"objtype"`
	ID      int64  `json:"id"`
	Name    string `json:"name"`

	// location fields
	LevelName *string  `json:"level_name,omitempty"`
	LevelSort *int     `json:"level_sort,omitempty"`
	Map       string   `json:"map,omitempty"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`

	// parent (area) fields
	Description string `json:"description,omitempty"`
	Modified    string `json:"modified,omitempty"` // RFC3339

	// session fields
	SessionName string         `json:"session_name,omitempty"`
	Start       string         `json:"start,omitempty"` // RFC3339
	End         string         `json:"end,omitempty"`   // RFC3339
	Status      string         `json:"status,omitempty"`
	IsBOF       bool           `json:"is_bof,omitempty"`
	Agenda      string         `json:"agenda,omitempty"`
	Minutes     string         `json:"minutes,omitempty"`
	Location    string         `json:"location,omitempty"` // location name, may be absent from this payload's location list
	Group       *ScheduleGroup `json:"group,omitempty"`
}

// ScheduleGroup is the working-group info embedded inline in session entries.
type ScheduleGroup struct {
	Acronym string `json:"acronym"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Type    string `json:"type"`
	// Parent is the area acronym; empty means the implicit "ietf" area.
	Parent string `json:"parent"`
}
