package sync

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"ietfmeet/internal/datatracker"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
)

// SyncPresentations pulls the slide decks attached to a session, keyed by
// resource URI.
func (s *Syncer) SyncPresentations(ctx context.Context, session *model.Session) error {
	u := fmt.Sprintf("%s/api/v1/meeting/sessionpresentation/?session=%d&limit=%d",
		s.base, session.RemoteID, meetingPageSize)

	var page datatracker.PresentationPage
	if err := s.client.GetJSON(ctx, u, nil, &page); err != nil {
		return fmt.Errorf("fetch presentations: %w", err)
	}

	return s.store.Transaction(ctx, func(tx store.Store) error {
		for _, obj := range page.Objects {
			if err := upsertPresentation(ctx, tx, session, obj); err != nil {
				logrus.Errorf("sync presentation %s: %v", obj.ResourceURI, err)
			}
		}
		return nil
	})
}

func upsertPresentation(ctx context.Context, tx store.Store, session *model.Session, obj datatracker.PresentationObject) error {
	p, err := tx.GetPresentationByResourceURI(ctx, obj.ResourceURI)
	created := false
	if store.IsNotFound(err) {
		p = &model.Presentation{ResourceURI: obj.ResourceURI}
		created = true
	} else if err != nil {
		return err
	}

	changed := 0
	assign(&p.Name, obj.Name, &changed)
	assign(&p.Rev, obj.Rev, &changed)
	assign(&p.Title, obj.Title, &changed)
	assign(&p.Order, obj.Order, &changed)
	assign(&p.SessionID, session.ID, &changed)

	if created || changed > 0 {
		return tx.SavePresentation(ctx, p)
	}
	return nil
}
