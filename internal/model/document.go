package model

import (
	"time"

	"gorm.io/gorm"
)

// Document is a datatracker document (draft, charter, published RFC).
// Exactly one of GroupID, RelatedGroupID and RFCGroupID is set, depending on
// whether the document is owned by the group (draft/charter), cross-references
// it (related draft), or is a published RFC of the group.
type Document struct {
	gorm.Model
	RemoteID int64  `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"index"`
	Rev      string
	Title    string
	Type     string

	Abstract         string
	Pages            int
	Stream           string
	StdLevel         string
	IntendedStdLevel string
	ExternalURL      string
	RemoteModified   time.Time

	GroupID        *uint
	Group          *Group `gorm:"foreignKey:GroupID"`
	RelatedGroupID *uint
	RelatedGroup   *Group `gorm:"foreignKey:RelatedGroupID"`
	RFCGroupID     *uint
	RFCGroup       *Group `gorm:"foreignKey:RFCGroupID"`
}
