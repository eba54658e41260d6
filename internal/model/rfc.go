package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// RFC is one entry of the RFC editor index. Once Published is set the record
// is treated as immutable: later index pulls skip it entirely, so graph edges
// are resolved exactly once at initial import.
type RFC struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null"` // e.g. "RFC8259"
	Title    string
	Abstract string

	Area              string
	Stream            string
	CurrentStatus     string
	PublicationStatus string
	DOI               string
	Draft             string
	ErrataURL         string
	PageCount         int

	Published *time.Time
	// Month and Year are derived from Published for sort buckets.
	Month int
	Year  int

	// Cross-reference names from the index's is-also list.
	BCP string
	FYI string
	STD string

	Authors  []*Author    `gorm:"many2many:rfc_authors"`
	Formats  []*DocFormat `gorm:"many2many:rfc_formats"`
	Keywords []*Keyword   `gorm:"many2many:rfc_keywords"`
}

// ShortStatus maps the index's status strings to the compact form used for
// display and grouping.
func (r *RFC) ShortStatus() string {
	return ShortStatus(r.CurrentStatus)
}

func ShortStatus(status string) string {
	switch status {
	case "INTERNET STANDARD":
		return "IS"
	case "PROPOSED STANDARD":
		return "PS"
	case "DRAFT STANDARD":
		return "DS"
	case "BEST CURRENT PRACTICE":
		return "BCP"
	case "INFORMATIONAL":
		return "I"
	case "EXPERIMENTAL":
		return "E"
	case "HISTORIC":
		return "H"
	case "UNKNOWN":
		return "U"
	}
	// Fall back to the initials of an unrecognized status.
	var b strings.Builder
	for _, word := range strings.Fields(status) {
		b.WriteByte(word[0])
	}
	return b.String()
}

// RFCUpdate is one edge of the updates relation: the RFC identified by
// RFCID updates the RFC identified by TargetID. The inverse (updated-by)
// direction is the same rows read backwards.
type RFCUpdate struct {
	RFCID    uint `gorm:"column:rfc_id;primaryKey;not null;index:idx_rfc_updates_rfc_id"`
	TargetID uint `gorm:"column:target_id;primaryKey;not null;index:idx_rfc_updates_target_id"`
}

func (RFCUpdate) TableName() string {
	return "rfc_updates"
}

// RFCObsolete is one edge of the obsoletes relation, mirroring RFCUpdate.
type RFCObsolete struct {
	RFCID    uint `gorm:"column:rfc_id;primaryKey;not null;index:idx_rfc_obsoletes_rfc_id"`
	TargetID uint `gorm:"column:target_id;primaryKey;not null;index:idx_rfc_obsoletes_target_id"`
}

func (RFCObsolete) TableName() string {
	return "rfc_obsoletes"
}

// Author, DocFormat and Keyword are unique-name lookup entities created
// idempotently during index import.
type Author struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}

type DocFormat struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}

type Keyword struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}
