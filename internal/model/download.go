package model

import "gorm.io/gorm"

// DownloadKind classifies what a cached file is.
type DownloadKind string

const (
	KindAgenda       DownloadKind = "agenda"
	KindCharter      DownloadKind = "charter"
	KindDraft        DownloadKind = "draft"
	KindMinutes      DownloadKind = "minutes"
	KindPresentation DownloadKind = "presentation"
	KindRFC          DownloadKind = "rfc"
	KindUnknown      DownloadKind = "unknown"
)

// Download is the metadata record for one cached file. Basename is the last
// path component of the source URL and is the de-dup key: at most one record
// exists per basename, and the file behind it is fetched at most once.
// Filename is the name the file is stored under locally, which may differ
// from Basename when the server suggests its own name.
type Download struct {
	gorm.Model
	Basename  string `gorm:"uniqueIndex;not null"`
	Filename  string
	MimeType  string
	Encoding  string
	Filesize  int64
	ETag      string
	Extension string
	Kind      DownloadKind
	Title     string
	GroupID   *uint
	Group     *Group
}
