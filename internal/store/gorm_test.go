package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ietfmeet/internal/model"
	"ietfmeet/internal/tester"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	tester.Setup()
	return NewGormStore(tester.TestDB())
}

func TestGormStore_MeetingByNumber(t *testing.T) {
	s := newTestStore(t)
	ctx := context.TODO()

	_, err := s.GetMeetingByNumber(ctx, "118")
	assert.True(t, IsNotFound(err))

	m := &model.Meeting{Number: "118", City: "Prague", TimeZone: "Europe/Prague"}
	require.NoError(t, s.SaveMeeting(ctx, m))

	got, err := s.GetMeetingByNumber(ctx, "118")
	require.NoError(t, err)
	assert.Equal(t, "Prague", got.City)
	assert.Equal(t, m.ID, got.ID)

	// Updates resolve to the same row, never a duplicate.
	got.City = "Praha"
	require.NoError(t, s.SaveMeeting(ctx, got))

	again, err := s.GetMeetingByNumber(ctx, "118")
	require.NoError(t, err)
	assert.Equal(t, m.ID, again.ID)
	assert.Equal(t, "Praha", again.City)
}

func TestGormStore_RFCLinksBothDirections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.TODO()

	a := &model.RFC{Name: "RFC8259", Title: "JSON"}
	b := &model.RFC{Name: "RFC7159", Title: "Old JSON"}
	require.NoError(t, s.SaveRFC(ctx, a))
	require.NoError(t, s.SaveRFC(ctx, b))

	require.NoError(t, s.LinkRFCObsoletes(ctx, a, b))
	// Linking twice must not duplicate the edge.
	require.NoError(t, s.LinkRFCObsoletes(ctx, a, b))

	obsoletes, err := s.RFCObsoletes(ctx, "RFC8259")
	require.NoError(t, err)
	require.Len(t, obsoletes, 1)
	assert.Equal(t, "RFC7159", obsoletes[0].Name)

	obsoletedBy, err := s.RFCObsoletedBy(ctx, "RFC7159")
	require.NoError(t, err)
	require.Len(t, obsoletedBy, 1)
	assert.Equal(t, "RFC8259", obsoletedBy[0].Name)

	// The forward direction of the target is empty.
	none, err := s.RFCObsoletes(ctx, "RFC7159")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormStore_FirstOrCreateLookups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.TODO()

	a1, err := s.FirstOrCreateAuthor(ctx, "T. Bray")
	require.NoError(t, err)
	a2, err := s.FirstOrCreateAuthor(ctx, "T. Bray")
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID)
}

func TestGormStore_Settings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.TODO()

	_, err := s.GetSetting(ctx, model.SettingRFCETag)
	assert.True(t, IsNotFound(err))

	require.NoError(t, s.PutSetting(ctx, model.SettingRFCETag, "abc123"))
	v, err := s.GetSetting(ctx, model.SettingRFCETag)
	require.NoError(t, err)
	assert.Equal(t, "abc123", v)

	// Replacement, not duplication.
	require.NoError(t, s.PutSetting(ctx, model.SettingRFCETag, "def456"))
	v, err = s.GetSetting(ctx, model.SettingRFCETag)
	require.NoError(t, err)
	assert.Equal(t, "def456", v)
}

func TestGormStore_SumDownloadSizes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.TODO()

	total, err := s.SumDownloadSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	require.NoError(t, s.SaveDownload(ctx, &model.Download{Basename: "a.txt", Filename: "a.txt", Filesize: 100}))
	require.NoError(t, s.SaveDownload(ctx, &model.Download{Basename: "b.txt", Filename: "b.txt", Filesize: 250}))

	total, err = s.SumDownloadSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)
}

func TestGormStore_Transaction(t *testing.T) {
	s := newTestStore(t)
	ctx := context.TODO()

	err := s.Transaction(ctx, func(tx Store) error {
		return tx.SaveGroup(ctx, &model.Group{Acronym: "httpbis", Name: "HTTP"})
	})
	require.NoError(t, err)

	g, err := s.GetGroupByAcronym(ctx, "httpbis")
	require.NoError(t, err)
	assert.Equal(t, "HTTP", g.Name)

	// A failing transaction rolls everything back.
	boom := assert.AnError
	err = s.Transaction(ctx, func(tx Store) error {
		if err := tx.SaveGroup(ctx, &model.Group{Acronym: "quic", Name: "QUIC"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetGroupByAcronym(ctx, "quic")
	assert.True(t, IsNotFound(err))
}

func TestProviders(t *testing.T) {
	s := newTestStore(t)

	p := NewDefaultProvider(s)
	got, err := p.Provide()
	require.NoError(t, err)
	assert.Same(t, s, got)

	opens := 0
	lazy := NewLazyProvider(func() (*gorm.DB, error) {
		opens++
		return tester.TestDB(), nil
	})
	first, err := lazy.Provide()
	require.NoError(t, err)
	second, err := lazy.Provide()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, opens)
}
