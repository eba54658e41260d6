package sync

import (
	"context"
	"fmt"
	"strings"

	"ietfmeet/internal/datatracker"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
)

// FetchRecording lazily resolves a session's video recording URL. The first
// call that finds Recording already set skips the network entirely; once a
// recording is stored it is never re-verified or overwritten. A candidate is
// accepted only on an exact title match against the expected recording title.
func (s *Syncer) FetchRecording(ctx context.Context, meeting *model.Meeting, group *model.Group, session *model.Session) error {
	if session.Recording != "" {
		return nil
	}

	u := fmt.Sprintf("%s/api/v1/doc/document/?name__contains=recording-%s&external_url__contains=youtube&group__acronym=%s",
		s.base, meeting.Number, group.Acronym)

	var page datatracker.DocumentPage
	if err := s.client.GetJSON(ctx, u, nil, &page); err != nil {
		return fmt.Errorf("fetch recording candidates: %w", err)
	}

	expected := RecordingTitle(group.Acronym, meeting, session)
	for _, obj := range page.Objects {
		if obj.Title != expected || obj.ExternalURL == "" {
			continue
		}
		// Only the first exact match is retained.
		session.Recording = obj.ExternalURL
		return s.store.Transaction(ctx, func(tx store.Store) error {
			return tx.SaveSession(ctx, session)
		})
	}
	return nil
}

// RecordingTitle builds the title the datatracker gives session recordings,
// from the group acronym and the session start in the meeting's time zone.
func RecordingTitle(acronym string, meeting *model.Meeting, session *model.Session) string {
	start := session.StartsAt.In(meeting.Zone())
	return fmt.Sprintf("Video recording for %s on %s",
		strings.ToUpper(acronym), start.Format("2006-01-02 at 15:04:05"))
}
