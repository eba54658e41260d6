package downloads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ietfmeet/internal/fetch"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
	"ietfmeet/internal/tester"
)

func newContentManager(t *testing.T) *Manager {
	t.Helper()
	tester.Setup()
	mgr, err := NewManager(store.NewGormStore(tester.TestDB()), fetch.NewClient(), tester.DownloadDir())
	require.NoError(t, err)
	return mgr
}

func writeDownload(t *testing.T, mgr *Manager, filename, mime, encoding string, body []byte) *model.Download {
	t.Helper()
	dl := &model.Download{
		Basename: filename,
		Filename: filename,
		MimeType: mime,
		Encoding: encoding,
	}
	require.NoError(t, os.WriteFile(filepath.Join(tester.DownloadDir(), filename), body, 0o644))
	return dl
}

func TestMaterialize_PlainTextEscaped(t *testing.T) {
	mgr := newContentManager(t)
	dl := writeDownload(t, mgr, "draft-foo-01.txt", "text/plain", "utf-8",
		[]byte("a < b && b > c"))

	out, err := mgr.Materialize(dl)
	require.NoError(t, err)
	assert.Contains(t, out, "<pre>a &lt; b &amp;&amp; b &gt; c</pre>")
	assert.Contains(t, out, stylesheet)
}

func TestMaterialize_Markdown(t *testing.T) {
	mgr := newContentManager(t)
	dl := writeDownload(t, mgr, "agenda-118-httpbis.md", "text/markdown", "utf-8",
		[]byte("# Agenda\n\n* item one\n"))

	out, err := mgr.Materialize(dl)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Agenda</h1>")
	assert.Contains(t, out, "<li>item one</li>")
	assert.Contains(t, out, stylesheet)
}

func TestMaterialize_HTMLGetsStylesheet(t *testing.T) {
	mgr := newContentManager(t)
	dl := writeDownload(t, mgr, "slides-118-httpbis.html", "text/html", "utf-8",
		[]byte("<html><head><title>Slides</title></head><body><p>hi</p></body></html>"))

	out, err := mgr.Materialize(dl)
	require.NoError(t, err)
	assert.Contains(t, out, stylesheet)
	assert.Contains(t, out, "<p>hi</p>")
}

func TestMaterialize_StyledHTMLLeftAlone(t *testing.T) {
	mgr := newContentManager(t)
	dl := writeDownload(t, mgr, "minutes-118-httpbis.html", "text/html", "utf-8",
		[]byte("<html><head><style>p{color:red}</style></head><body><p>hi</p></body></html>"))

	out, err := mgr.Materialize(dl)
	require.NoError(t, err)
	assert.NotContains(t, out, stylesheet)
	assert.Contains(t, out, "p{color:red}")
}

func TestMaterialize_Latin1(t *testing.T) {
	mgr := newContentManager(t)
	// 0xe9 is é in ISO-8859-1.
	dl := writeDownload(t, mgr, "draft-accent-00.txt", "text/plain", "iso-8859-1",
		[]byte{'c', 'a', 'f', 0xe9})

	out, err := mgr.Materialize(dl)
	require.NoError(t, err)
	assert.Contains(t, out, "café")
}

func TestMaterialize_UnknownEncoding(t *testing.T) {
	mgr := newContentManager(t)
	dl := writeDownload(t, mgr, "draft-odd-00.txt", "text/plain", "no-such-charset",
		[]byte("body"))

	_, err := mgr.Materialize(dl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-charset")
}

func TestMaterialize_MissingFile(t *testing.T) {
	mgr := newContentManager(t)
	dl := &model.Download{Basename: "gone.txt", Filename: "gone.txt", MimeType: "text/plain"}

	_, err := mgr.Materialize(dl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.txt")
}
