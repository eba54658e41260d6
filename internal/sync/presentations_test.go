package sync

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ietfmeet/internal/fetch"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
	"ietfmeet/internal/tester"
)

func TestSyncPresentations(t *testing.T) {
	tester.Setup()
	st := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()

	session := &model.Session{RemoteID: 100, Name: "HTTPBIS Session I"}
	require.NoError(t, st.SaveSession(ctx, session))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/meeting/sessionpresentation/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("session"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
		  "meta": {"limit": 100, "offset": 0, "next": ""},
		  "objects": [
		    {"resource_uri": "/api/v1/meeting/sessionpresentation/9001/", "document": "slides-118-httpbis-intro", "rev": "00", "title": "Introduction", "order": 1},
		    {"resource_uri": "/api/v1/meeting/sessionpresentation/9002/", "document": "slides-118-httpbis-cache", "rev": "02", "title": "Caching Update", "order": 2}
		  ]
		}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	syncer := NewSyncer(st, fetch.NewClient(), server.URL)

	require.NoError(t, syncer.SyncPresentations(ctx, session))

	p, err := st.GetPresentationByResourceURI(ctx, "/api/v1/meeting/sessionpresentation/9001/")
	require.NoError(t, err)
	assert.Equal(t, "slides-118-httpbis-intro", p.Name)
	assert.Equal(t, "00", p.Rev)
	assert.Equal(t, "Introduction", p.Title)
	assert.Equal(t, 1, p.Order)
	assert.Equal(t, session.ID, p.SessionID)

	var count int64
	tester.TestDB().Model(&model.Presentation{}).Count(&count)
	assert.Equal(t, int64(2), count)

	// Re-running with the identical payload creates no duplicates per
	// resource URI and rewrites nothing.
	firstWrite := p.UpdatedAt
	require.NoError(t, syncer.SyncPresentations(ctx, session))

	tester.TestDB().Model(&model.Presentation{}).Count(&count)
	assert.Equal(t, int64(2), count)

	again, err := st.GetPresentationByResourceURI(ctx, "/api/v1/meeting/sessionpresentation/9001/")
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, firstWrite, again.UpdatedAt)
}

func TestSyncPresentations_UpdatesChangedRev(t *testing.T) {
	tester.Setup()
	st := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()

	session := &model.Session{RemoteID: 100, Name: "HTTPBIS Session I"}
	require.NoError(t, st.SaveSession(ctx, session))

	rev := "00"
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/meeting/sessionpresentation/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
		  "meta": {"limit": 100, "offset": 0, "next": ""},
		  "objects": [
		    {"resource_uri": "/api/v1/meeting/sessionpresentation/9001/", "document": "slides-118-httpbis-intro", "rev": %q, "title": "Introduction", "order": 1}
		  ]
		}`, rev)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	syncer := NewSyncer(st, fetch.NewClient(), server.URL)

	require.NoError(t, syncer.SyncPresentations(ctx, session))

	rev = "01"
	require.NoError(t, syncer.SyncPresentations(ctx, session))

	p, err := st.GetPresentationByResourceURI(ctx, "/api/v1/meeting/sessionpresentation/9001/")
	require.NoError(t, err)
	assert.Equal(t, "01", p.Rev)

	var count int64
	tester.TestDB().Model(&model.Presentation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
