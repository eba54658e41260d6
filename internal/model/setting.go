package model

// Setting is one key-value pair of persisted sync state (ETags, last-check
// timestamps, the selected meeting number).
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Setting keys used by the sync engine.
const (
	SettingRFCLastCheck    = "rfc.lastCheck"
	SettingRFCETag         = "rfc.etag"
	SettingRFCLastModified = "rfc.lastModified"
	SettingMeetingNumber   = "meeting.selected"
	SettingUseLocalTime    = "display.localTime"
)
