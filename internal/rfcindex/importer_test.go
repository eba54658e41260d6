package rfcindex

import (
	"context"
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

// forwardRefIndex lists RFC8259 before the RFC7159 it obsoletes, so edge
// resolution must survive the forward reference.
const forwardRefIndex = `<?xml version="1.0" encoding="UTF-8"?>
<rfc-index xmlns="http://www.rfc-editor.org/rfc-index">
  <rfc-entry>
    <doc-id>RFC8259</doc-id>
    <title>The JavaScript Object Notation (JSON) Data Interchange Format</title>
    <author><name>T. Bray</name></author>
    <date><month>December</month><year>2017</year></date>
    <format><file-format>ASCII</file-format></format>
    <page-count>16</page-count>
    <keywords><kw>JSON</kw></keywords>
    <obsoletes><doc-id>RFC7159</doc-id></obsoletes>
    <current-status>INTERNET STANDARD</current-status>
    <publication-status>PROPOSED STANDARD</publication-status>
    <stream>IETF</stream>
  </rfc-entry>
  <rfc-entry>
    <doc-id>RFC7159</doc-id>
    <title>The JavaScript Object Notation (JSON) Data Interchange Format</title>
    <date><month>March</month><year>2014</year></date>
    <updates><doc-id>RFC9999</doc-id></updates>
    <current-status>HISTORIC</current-status>
    <stream>IETF</stream>
  </rfc-entry>
</rfc-index>`

func newImporterTestEnv(t *testing.T, payload string) (*Importer, store.Store, *int) {
	t.Helper()
	tester.Setup()
	st := store.NewGormStore(tester.TestDB())

	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/rfc-index.xml", func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("If-None-Match") == `"index-v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.Header().Set("Etag", `"index-v1-gzip"`)
		w.Header().Set("Last-Modified", "Mon, 06 Nov 2023 09:00:00 GMT")
		_, _ = w.Write([]byte(payload))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	imp := NewImporter(st, fetch.NewClient(), server.URL+"/rfc-index.xml")
	return imp, st, &requests
}

func TestImporter_ForwardReferenceResolution(t *testing.T) {
	imp, st, _ := newImporterTestEnv(t, forwardRefIndex)
	ctx := context.TODO()

	require.NoError(t, imp.Run(ctx))
	assert.Equal(t, StateIdle, imp.State())

	count, err := st.CountRFCs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	obsoletes, err := st.RFCObsoletes(ctx, "RFC8259")
	require.NoError(t, err)
	require.Len(t, obsoletes, 1)
	assert.Equal(t, "RFC7159", obsoletes[0].Name)

	obsoletedBy, err := st.RFCObsoletedBy(ctx, "RFC7159")
	require.NoError(t, err)
	require.Len(t, obsoletedBy, 1)
	assert.Equal(t, "RFC8259", obsoletedBy[0].Name)

	// An edge whose target never appears in the index is dropped.
	updates, err := st.RFCUpdates(ctx, "RFC7159")
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestImporter_ScalarFields(t *testing.T) {
	imp, st, _ := newImporterTestEnv(t, forwardRefIndex)
	ctx := context.TODO()

	require.NoError(t, imp.Run(ctx))

	r, err := st.GetRFCByName(ctx, "RFC8259")
	require.NoError(t, err)
	assert.Equal(t, "INTERNET STANDARD", r.CurrentStatus)
	assert.Equal(t, "IS", r.ShortStatus())
	assert.Equal(t, "IETF", r.Stream)
	assert.Equal(t, 16, r.PageCount)
	require.NotNil(t, r.Published)
	assert.Equal(t, 2017, r.Year)
	assert.Equal(t, int(12), r.Month)
}

func TestImporter_PersistsValidators(t *testing.T) {
	imp, st, _ := newImporterTestEnv(t, forwardRefIndex)
	ctx := context.TODO()

	require.NoError(t, imp.Run(ctx))

	// The compression suffix is stripped before persisting.
	etag, err := st.GetSetting(ctx, model.SettingRFCETag)
	require.NoError(t, err)
	assert.Equal(t, "index-v1", etag)

	lastModified, err := st.GetSetting(ctx, model.SettingRFCLastModified)
	require.NoError(t, err)
	assert.Equal(t, "Mon, 06 Nov 2023 09:00:00 GMT", lastModified)
}

func TestImporter_NotModifiedShortCircuit(t *testing.T) {
	imp, st, requests := newImporterTestEnv(t, forwardRefIndex)
	ctx := context.TODO()

	require.NoError(t, imp.Run(ctx))
	assert.Equal(t, 1, *requests)

	count, err := st.CountRFCs(ctx)
	require.NoError(t, err)

	// Second cycle sends If-None-Match, gets a 304, and skips the import
	// entirely while still counting as success.
	require.NoError(t, imp.Run(ctx))
	assert.Equal(t, 2, *requests)
	assert.Equal(t, StateIdle, imp.State())

	count2, err := st.CountRFCs(ctx)
	require.NoError(t, err)
	assert.Equal(t, count, count2)
}

func TestImporter_ExistingRFCsAreImmutable(t *testing.T) {
	imp, st, _ := newImporterTestEnv(t, forwardRefIndex)
	ctx := context.TODO()

	require.NoError(t, st.SaveRFC(ctx, &model.RFC{Name: "RFC8259", Title: "hand-made"}))

	require.NoError(t, imp.Run(ctx))

	r, err := st.GetRFCByName(ctx, "RFC8259")
	require.NoError(t, err)
	assert.Equal(t, "hand-made", r.Title)
	assert.Equal(t, 0, r.PageCount)
}
