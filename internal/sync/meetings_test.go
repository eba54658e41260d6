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

func TestSyncMeetings_Paginated(t *testing.T) {
	tester.Setup()
	st := store.NewGormStore(tester.TestDB())

	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/meeting/meeting/", func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprint(w, `{
			  "meta": {"limit": 100, "offset": 0, "next": "/api/v1/meeting/meeting/?type=ietf&limit=100&offset=100", "total_count": 3},
			  "objects": [
			    {"number": "117", "city": "San Francisco", "country": "US", "date": "2023-07-22", "time_zone": "America/Los_Angeles", "venue_name": "Hilton", "updated": "2023-08-01T00:00:00Z"},
			    {"number": "118", "city": "Prague", "country": "CZ", "date": "2023-11-04", "time_zone": "Europe/Prague", "venue_name": "Hilton Prague", "updated": "2023-11-01T00:00:00Z"}
			  ]
			}`)
			return
		}
		fmt.Fprint(w, `{
		  "meta": {"limit": 100, "offset": 100, "next": "", "total_count": 3},
		  "objects": [
		    {"number": "119", "city": "Brisbane", "country": "AU", "date": "2024-03-16", "time_zone": "Australia/Brisbane", "updated": "2024-03-01T00:00:00Z"}
		  ]
		}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	syncer := NewSyncer(st, fetch.NewClient(), server.URL)
	ctx := context.TODO()

	require.NoError(t, syncer.SyncMeetings(ctx))
	assert.Equal(t, 2, requests)

	var count int64
	tester.TestDB().Model(&model.Meeting{}).Count(&count)
	assert.Equal(t, int64(3), count)

	m, err := st.GetMeetingByNumber(ctx, "118")
	require.NoError(t, err)
	assert.Equal(t, "Prague", m.City)
	assert.Equal(t, "Europe/Prague", m.TimeZone)
	assert.Equal(t, 2023, m.Date.Year())

	// Re-running with the same payload creates nothing and rewrites nothing.
	firstWrite := m.UpdatedAt
	require.NoError(t, syncer.SyncMeetings(ctx))

	tester.TestDB().Model(&model.Meeting{}).Count(&count)
	assert.Equal(t, int64(3), count)

	again, err := st.GetMeetingByNumber(ctx, "118")
	require.NoError(t, err)
	assert.Equal(t, firstWrite, again.UpdatedAt)
}
