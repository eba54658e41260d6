package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"ietfmeet/internal/datatracker"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
)

const meetingPageSize = 100

// SyncMeetings pulls the full paginated meeting list and upserts each meeting
// by number. A single meeting's failure is logged and skipped; only a fetch
// or transaction failure aborts the run.
func (s *Syncer) SyncMeetings(ctx context.Context) error {
	offset := 0
	for {
		url := fmt.Sprintf("%s/api/v1/meeting/meeting/?type=ietf&limit=%d&offset=%d",
			s.base, meetingPageSize, offset)

		var page datatracker.MeetingPage
		if err := s.client.GetJSON(ctx, url, nil, &page); err != nil {
			return fmt.Errorf("fetch meetings: %w", err)
		}

		err := s.store.Transaction(ctx, func(tx store.Store) error {
			for _, obj := range page.Objects {
				if err := upsertMeeting(ctx, tx, obj); err != nil {
					logrus.Errorf("sync meeting %s: %v", obj.Number, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		if page.Meta.Next == "" {
			return nil
		}
		offset += meetingPageSize
	}
}

func upsertMeeting(ctx context.Context, tx store.Store, obj datatracker.MeetingObject) error {
	m, err := tx.GetMeetingByNumber(ctx, obj.Number)
	created := false
	if store.IsNotFound(err) {
		m = &model.Meeting{Number: obj.Number}
		created = true
	} else if err != nil {
		return err
	}

	changed := 0
	assign(&m.City, obj.City, &changed)
	assign(&m.Country, obj.Country, &changed)
	assign(&m.Venue, obj.VenueName, &changed)
	assign(&m.VenueAddr, obj.VenueAddr, &changed)
	assign(&m.TimeZone, obj.TimeZone, &changed)

	if date, err := time.Parse("2006-01-02", obj.Date); err == nil {
		assignTime(&m.Date, date, &changed)
	}
	if updated, err := time.Parse(time.RFC3339, obj.Updated); err == nil {
		assignTime(&m.RemoteUpdated, updated, &changed)
	}

	if created || changed > 0 {
		return tx.SaveMeeting(ctx, m)
	}
	return nil
}
