package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ietfmeet/internal/model"
)

type Store interface {
	MeetingStore
	ScheduleStore
	DocumentStore
	DownloadStore
	RFCStore
	SettingStore
	// Transaction runs f against a transactional view of the store and
	// commits when f returns nil. All reads and writes inside f are
	// linearized with respect to other transactions on the same store.
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type MeetingStore interface {
	// GetMeetingByNumber retrieves a meeting by its IETF meeting number.
	GetMeetingByNumber(ctx context.Context, number string) (*model.Meeting, error)
	// GetMeetingByID retrieves a meeting by primary key.
	GetMeetingByID(ctx context.Context, id uint) (*model.Meeting, error)
	// SaveMeeting creates or updates a meeting.
	SaveMeeting(ctx context.Context, m *model.Meeting) error
	// ListMeetings retrieves all known meetings, most recent first.
	ListMeetings(ctx context.Context) ([]*model.Meeting, error)
}

type ScheduleStore interface {
	// GetAreaByName retrieves an area by name.
	GetAreaByName(ctx context.Context, name string) (*model.Area, error)
	// SaveArea creates or updates an area.
	SaveArea(ctx context.Context, a *model.Area) error
	// GetGroupByAcronym retrieves a working group by acronym.
	GetGroupByAcronym(ctx context.Context, acronym string) (*model.Group, error)
	// GetGroupByID retrieves a working group by primary key.
	GetGroupByID(ctx context.Context, id uint) (*model.Group, error)
	// SaveGroup creates or updates a working group.
	SaveGroup(ctx context.Context, g *model.Group) error
	// GetLocationByRemoteID retrieves a location by its remote id.
	GetLocationByRemoteID(ctx context.Context, id int64) (*model.Location, error)
	// GetLocationByID retrieves a location by primary key.
	GetLocationByID(ctx context.Context, id uint) (*model.Location, error)
	// GetLocationByName retrieves a location by name within a meeting.
	GetLocationByName(ctx context.Context, meetingID uint, name string) (*model.Location, error)
	// SaveLocation creates or updates a location.
	SaveLocation(ctx context.Context, l *model.Location) error
	// GetSessionByRemoteID retrieves a session by its remote id.
	GetSessionByRemoteID(ctx context.Context, id int64) (*model.Session, error)
	// SaveSession creates or updates a session.
	SaveSession(ctx context.Context, s *model.Session) error
	// ListSessionsByMeeting retrieves the sessions of a meeting ordered by start time.
	ListSessionsByMeeting(ctx context.Context, meetingID uint) ([]*model.Session, error)
	// GetPresentationByResourceURI retrieves a presentation by resource URI.
	GetPresentationByResourceURI(ctx context.Context, uri string) (*model.Presentation, error)
	// SavePresentation creates or updates a presentation.
	SavePresentation(ctx context.Context, p *model.Presentation) error
}

type DocumentStore interface {
	// GetDocumentByRemoteID retrieves a document by its remote numeric id.
	GetDocumentByRemoteID(ctx context.Context, id int64) (*model.Document, error)
	// SaveDocument creates or updates a document.
	SaveDocument(ctx context.Context, d *model.Document) error
	// ListGroupDocuments retrieves the documents owned by a group.
	ListGroupDocuments(ctx context.Context, groupID uint) ([]*model.Document, error)
}

type DownloadStore interface {
	// GetDownloadByBasename retrieves a download record by URL basename.
	GetDownloadByBasename(ctx context.Context, basename string) (*model.Download, error)
	// SaveDownload creates or updates a download record.
	SaveDownload(ctx context.Context, d *model.Download) error
	// DeleteDownload permanently deletes a download record by basename,
	// freeing the basename for a later re-download.
	DeleteDownload(ctx context.Context, basename string) error
	// ListDownloads retrieves all download records.
	ListDownloads(ctx context.Context) ([]*model.Download, error)
	// SumDownloadSizes reports the total bytes used by cached files.
	SumDownloadSizes(ctx context.Context) (int64, error)
}

type RFCStore interface {
	// GetRFCByName retrieves an RFC by name, e.g. "RFC8259".
	GetRFCByName(ctx context.Context, name string) (*model.RFC, error)
	// SaveRFC creates or updates an RFC together with its lookup associations.
	SaveRFC(ctx context.Context, r *model.RFC) error
	// CountRFCs reports the number of stored RFCs.
	CountRFCs(ctx context.Context) (int64, error)
	// LinkRFCUpdates records that src updates dst. Idempotent.
	LinkRFCUpdates(ctx context.Context, src, dst *model.RFC) error
	// LinkRFCObsoletes records that src obsoletes dst. Idempotent.
	LinkRFCObsoletes(ctx context.Context, src, dst *model.RFC) error
	// RFCUpdates lists the RFCs updated by the named RFC.
	RFCUpdates(ctx context.Context, name string) ([]*model.RFC, error)
	// RFCUpdatedBy lists the RFCs that update the named RFC.
	RFCUpdatedBy(ctx context.Context, name string) ([]*model.RFC, error)
	// RFCObsoletes lists the RFCs obsoleted by the named RFC.
	RFCObsoletes(ctx context.Context, name string) ([]*model.RFC, error)
	// RFCObsoletedBy lists the RFCs that obsolete the named RFC.
	RFCObsoletedBy(ctx context.Context, name string) ([]*model.RFC, error)
	// FirstOrCreateAuthor retrieves or creates an author by name.
	FirstOrCreateAuthor(ctx context.Context, name string) (*model.Author, error)
	// FirstOrCreateFormat retrieves or creates a document format by name.
	FirstOrCreateFormat(ctx context.Context, name string) (*model.DocFormat, error)
	// FirstOrCreateKeyword retrieves or creates a keyword by name.
	FirstOrCreateKeyword(ctx context.Context, name string) (*model.Keyword, error)
}

type SettingStore interface {
	// GetSetting retrieves a setting value. Missing keys report a not-found error.
	GetSetting(ctx context.Context, key string) (string, error)
	// PutSetting creates or replaces a setting value.
	PutSetting(ctx context.Context, key, value string) error
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
