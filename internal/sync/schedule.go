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

// SyncSchedule pulls agenda.json for a meeting and reconciles it in two
// passes: locations and areas first, then sessions. Sessions resolve their
// group (upserted inline from the embedded group info), location and meeting
// references; a session naming a location absent from this payload keeps a
// nil location rather than failing.
func (s *Syncer) SyncSchedule(ctx context.Context, number string) error {
	url := fmt.Sprintf("%s/meeting/%s/agenda.json", s.base, number)

	var payload datatracker.Schedule
	if err := s.client.GetJSON(ctx, url, nil, &payload); err != nil {
		return fmt.Errorf("fetch schedule: %w", err)
	}
	entries := payload[number]

	return s.store.Transaction(ctx, func(tx store.Store) error {
		meeting, err := tx.GetMeetingByNumber(ctx, number)
		if store.IsNotFound(err) {
			// Schedule arrived before the meeting list sync; create a
			// stub the list sync will flesh out later.
			meeting = &model.Meeting{Number: number}
			if err := tx.SaveMeeting(ctx, meeting); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, e := range entries {
			switch e.ObjType {
			case datatracker.ObjTypeLocation:
				if err := upsertLocation(ctx, tx, meeting, e); err != nil {
					logrus.Errorf("sync location %d: %v", e.ID, err)
				}
			case datatracker.ObjTypeParent:
				if err := upsertArea(ctx, tx, e); err != nil {
					logrus.Errorf("sync area %s: %v", e.Name, err)
				}
			}
		}

		for _, e := range entries {
			if e.ObjType != datatracker.ObjTypeSession {
				continue
			}
			if err := upsertSession(ctx, tx, meeting, e); err != nil {
				logrus.Errorf("sync session %d: %v", e.ID, err)
			}
		}
		return nil
	})
}

func upsertLocation(ctx context.Context, tx store.Store, meeting *model.Meeting, e datatracker.ScheduleEntry) error {
	l, err := tx.GetLocationByRemoteID(ctx, e.ID)
	created := false
	if store.IsNotFound(err) {
		l = &model.Location{RemoteID: e.ID}
		created = true
	} else if err != nil {
		return err
	}

	// Absent optional fields reset to their documented defaults instead of
	// keeping a stale value.
	levelName := model.DefaultLevelName
	if e.LevelName != nil {
		levelName = *e.LevelName
	}
	levelSort := 0
	if e.LevelSort != nil {
		levelSort = *e.LevelSort
	}
	x, y := 0.0, 0.0
	if e.X != nil {
		x = *e.X
	}
	if e.Y != nil {
		y = *e.Y
	}

	changed := 0
	assign(&l.Name, e.Name, &changed)
	assign(&l.LevelName, levelName, &changed)
	assign(&l.LevelSort, levelSort, &changed)
	assign(&l.MapURL, e.Map, &changed)
	assign(&l.X, x, &changed)
	assign(&l.Y, y, &changed)
	assign(&l.MeetingID, meeting.ID, &changed)

	if created || changed > 0 {
		return tx.SaveLocation(ctx, l)
	}
	return nil
}

func upsertArea(ctx context.Context, tx store.Store, e datatracker.ScheduleEntry) error {
	a, err := tx.GetAreaByName(ctx, e.Name)
	created := false
	if store.IsNotFound(err) {
		a = &model.Area{Name: e.Name}
		created = true
	} else if err != nil {
		return err
	}

	changed := 0
	assign(&a.RemoteID, e.ID, &changed)
	assign(&a.Description, e.Description, &changed)
	if modified, err := time.Parse(time.RFC3339, e.Modified); err == nil {
		assignTime(&a.Modified, modified, &changed)
	}

	if created || changed > 0 {
		return tx.SaveArea(ctx, a)
	}
	return nil
}

func upsertSession(ctx context.Context, tx store.Store, meeting *model.Meeting, e datatracker.ScheduleEntry) error {
	var groupID *uint
	if e.Group != nil {
		group, err := upsertGroup(ctx, tx, e.Group)
		if err != nil {
			return err
		}
		groupID = &group.ID
	}

	var locationID *uint
	if e.Location != "" {
		loc, err := tx.GetLocationByName(ctx, meeting.ID, e.Location)
		if err == nil {
			locationID = &loc.ID
		} else if !store.IsNotFound(err) {
			return err
		}
		// Unknown location name: leave the reference unset.
	}

	sess, err := tx.GetSessionByRemoteID(ctx, e.ID)
	created := false
	if store.IsNotFound(err) {
		sess = &model.Session{RemoteID: e.ID}
		created = true
	} else if err != nil {
		return err
	}

	changed := 0
	name := e.SessionName
	if name == "" {
		name = e.Name
	}
	assign(&sess.Name, name, &changed)
	assign(&sess.Status, e.Status, &changed)
	assign(&sess.IsBOF, e.IsBOF, &changed)
	assign(&sess.AgendaURL, e.Agenda, &changed)
	assign(&sess.MinutesURL, e.Minutes, &changed)
	assign(&sess.MeetingID, meeting.ID, &changed)
	assignRef(&sess.GroupID, groupID, &changed)
	assignRef(&sess.LocationID, locationID, &changed)

	zone := meeting.Zone()
	if start, err := time.Parse(time.RFC3339, e.Start); err == nil {
		assignTime(&sess.StartsAt, start, &changed)
		assign(&sess.Day, start.In(zone).Format("Monday"), &changed)
		if end, err := time.Parse(time.RFC3339, e.End); err == nil {
			assignTime(&sess.EndsAt, end, &changed)
			assign(&sess.TimeRange, fmt.Sprintf("%s-%s",
				start.In(zone).Format("15:04"), end.In(zone).Format("15:04")), &changed)
		}
	}

	// Favorite, CalendarEventID and Recording are user-owned and are never
	// written here.

	if created || changed > 0 {
		return tx.SaveSession(ctx, sess)
	}
	return nil
}

func upsertGroup(ctx context.Context, tx store.Store, sg *datatracker.ScheduleGroup) (*model.Group, error) {
	g, err := tx.GetGroupByAcronym(ctx, sg.Acronym)
	created := false
	if store.IsNotFound(err) {
		g = &model.Group{Acronym: sg.Acronym}
		created = true
	} else if err != nil {
		return nil, err
	}

	changed := 0
	assign(&g.Name, sg.Name, &changed)
	assign(&g.State, sg.State, &changed)
	assign(&g.Type, sg.Type, &changed)

	// A nil area reference means the implicit "ietf" area.
	var areaID *uint
	if sg.Parent != "" {
		area, err := tx.GetAreaByName(ctx, sg.Parent)
		if store.IsNotFound(err) {
			area = &model.Area{Name: sg.Parent}
			if err := tx.SaveArea(ctx, area); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		areaID = &area.ID
	}
	assignRef(&g.AreaID, areaID, &changed)

	if created || changed > 0 {
		if err := tx.SaveGroup(ctx, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}
