package sync

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ietfmeet/internal/datatracker"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
)

// docAssoc says which of the three mutually exclusive group associations an
// upserted document carries.
type docAssoc int

const (
	assocOwner docAssoc = iota
	assocRelated
	assocRFC
)

// SyncGroupDrafts pulls the active drafts owned by a working group.
func (s *Syncer) SyncGroupDrafts(ctx context.Context, acronym string) error {
	query := fmt.Sprintf("group__acronym=%s&type=draft&states__slug__contains=active", acronym)
	return s.syncDocuments(ctx, acronym, query, assocOwner, nil)
}

// SyncRelatedDrafts pulls active drafts that mention the group without
// belonging to its own draft namespace. The regex excludes the owned
// namespace server-side; the prefix guard below is authoritative, so a
// document never appears as both a draft and a related draft of one group.
func (s *Syncer) SyncRelatedDrafts(ctx context.Context, acronym string) error {
	ownPrefix := "draft-ietf-" + acronym + "-"
	regex := fmt.Sprintf("^draft-(?!ietf-%s-)[a-z0-9-]*-%s-", acronym, acronym)
	query := fmt.Sprintf("name__regex=%s&type=draft&states__slug__contains=active",
		url.QueryEscape(regex))

	return s.syncDocuments(ctx, acronym, query, assocRelated, func(name string) bool {
		return strings.HasPrefix(name, ownPrefix)
	})
}

// SyncCharter pulls the group's charter document.
func (s *Syncer) SyncCharter(ctx context.Context, acronym string) error {
	u := fmt.Sprintf("%s/api/v1/doc/document/charter-ietf-%s/", s.base, acronym)

	var obj datatracker.DocumentObject
	if err := s.client.GetJSON(ctx, u, nil, &obj); err != nil {
		return fmt.Errorf("fetch charter: %w", err)
	}

	return s.store.Transaction(ctx, func(tx store.Store) error {
		group, err := tx.GetGroupByAcronym(ctx, acronym)
		if err != nil {
			return err
		}
		return upsertDocument(ctx, tx, obj, group, assocOwner)
	})
}

func (s *Syncer) syncDocuments(ctx context.Context, acronym, query string, assoc docAssoc, skip func(name string) bool) error {
	offset := 0
	for {
		u := fmt.Sprintf("%s/api/v1/doc/document/?%s&limit=%d&offset=%d",
			s.base, query, meetingPageSize, offset)

		var page datatracker.DocumentPage
		if err := s.client.GetJSON(ctx, u, nil, &page); err != nil {
			return fmt.Errorf("fetch documents: %w", err)
		}

		err := s.store.Transaction(ctx, func(tx store.Store) error {
			group, err := tx.GetGroupByAcronym(ctx, acronym)
			if err != nil {
				return err
			}
			for _, obj := range page.Objects {
				if skip != nil && skip(obj.Name) {
					continue
				}
				if err := upsertDocument(ctx, tx, obj, group, assoc); err != nil {
					logrus.Errorf("sync document %s: %v", obj.Name, err)
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

func upsertDocument(ctx context.Context, tx store.Store, obj datatracker.DocumentObject, group *model.Group, assoc docAssoc) error {
	d, err := tx.GetDocumentByRemoteID(ctx, obj.ID)
	created := false
	if store.IsNotFound(err) {
		d = &model.Document{RemoteID: obj.ID}
		created = true
	} else if err != nil {
		return err
	}

	changed := 0
	assign(&d.Name, obj.Name, &changed)
	assign(&d.Rev, obj.Rev, &changed)
	assign(&d.Title, obj.Title, &changed)
	assign(&d.Type, obj.Type, &changed)
	assign(&d.Abstract, obj.Abstract, &changed)
	assign(&d.Pages, obj.Pages, &changed)
	assign(&d.Stream, obj.Stream, &changed)
	assign(&d.StdLevel, obj.StdLevel, &changed)
	assign(&d.IntendedStdLevel, obj.IntendedStdLevel, &changed)
	assign(&d.ExternalURL, obj.ExternalURL, &changed)
	if t, err := time.Parse(time.RFC3339, obj.Time); err == nil {
		assignTime(&d.RemoteModified, t, &changed)
	}

	// The three group associations are mutually exclusive per document kind.
	var owner, related, rfc *uint
	switch assoc {
	case assocOwner:
		owner = &group.ID
	case assocRelated:
		related = &group.ID
	case assocRFC:
		rfc = &group.ID
	}
	assignRef(&d.GroupID, owner, &changed)
	assignRef(&d.RelatedGroupID, related, &changed)
	assignRef(&d.RFCGroupID, rfc, &changed)

	if created || changed > 0 {
		return tx.SaveDocument(ctx, d)
	}
	return nil
}
