// Package downloads manages the content-addressed cache of fetched files:
// agendas, slides, drafts and RFC texts. De-duplication is by URL basename;
// a file is fetched from the network at most once per basename.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ietfmeet/internal/fetch"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
)

// acceptHeader prefers markdown, then html, then plain text.
const acceptHeader = "text/markdown, text/html;q=0.9, text/plain;q=0.8"

var (
	// ErrOrphanFile reports a file on disk with no matching download
	// record. The orphan is deleted rather than silently adopted.
	ErrOrphanFile = errors.New("orphan file without download record")
)

type Manager struct {
	store  store.Store
	client *fetch.Client
	dir    string

	mu      sync.Mutex
	busy    bool
	lastErr error
}

func NewManager(st store.Store, client *fetch.Client, dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Manager{
		store:  st,
		client: client,
		dir:    dir,
	}, nil
}

// Busy reports whether a download is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// LastError returns the error of the most recent failed download, cleared
// when a new download starts.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Path returns the local path of a cached download.
func (m *Manager) Path(dl *model.Download) string {
	return filepath.Join(m.dir, dl.Filename)
}

// Resolve returns the cached download for url, fetching it first if no
// record exists. The store lookup always precedes any network request. A
// record whose backing file was externally removed is the inverse of the
// orphan-file case: the stale record is dropped and the file fetched again.
func (m *Manager) Resolve(ctx context.Context, rawURL string, group *model.Group, kind model.DownloadKind, title string) (*model.Download, error) {
	basename := fetch.Basename(rawURL)

	dl, err := m.store.GetDownloadByBasename(ctx, basename)
	if err == nil {
		if _, statErr := os.Stat(m.Path(dl)); statErr == nil {
			return dl, nil
		}
		logrus.Warnf("download %s has no backing file, refetching", basename)
		err := m.store.Transaction(ctx, func(tx store.Store) error {
			return tx.DeleteDownload(ctx, basename)
		})
		if err != nil {
			return nil, err
		}
	} else if !store.IsNotFound(err) {
		return nil, err
	}

	return m.downloadToFile(ctx, rawURL, basename, group, kind, title)
}

func (m *Manager) downloadToFile(ctx context.Context, rawURL, basename string, group *model.Group, kind model.DownloadKind, title string) (dl *model.Download, err error) {
	m.mu.Lock()
	m.busy = true
	m.lastErr = nil
	m.mu.Unlock()

	// The busy flag clears and the error surfaces on every exit path.
	defer func() {
		m.mu.Lock()
		m.busy = false
		m.lastErr = err
		m.mu.Unlock()
	}()

	hdr := http.Header{}
	hdr.Set("Accept", acceptHeader)

	body, meta, err := m.client.GetFile(ctx, rawURL, hdr)
	if err != nil {
		return nil, err
	}

	filename := meta.SuggestedFilename
	if filename == "" {
		filename = basename
	}
	target := filepath.Join(m.dir, filename)

	// A file already at the computed path means a previous cycle left the
	// disk and the store inconsistent. Self-heal by deleting the orphan
	// and surfacing the condition instead of overwriting silently.
	if _, statErr := os.Stat(target); statErr == nil {
		if rmErr := os.Remove(target); rmErr != nil {
			logrus.Errorf("remove orphan %s: %v", target, rmErr)
		}
		return nil, fmt.Errorf("%w: %s", ErrOrphanFile, filename)
	}

	tmp := filepath.Join(m.dir, "."+uuid.NewString()+".tmp")
	if err = os.WriteFile(tmp, body, 0o644); err != nil {
		return nil, err
	}
	if err = os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}

	if kind == "" || kind == model.KindUnknown {
		kind = InferKind(rawURL)
	}

	dl = &model.Download{
		Basename:  basename,
		Filename:  filename,
		MimeType:  meta.MimeType,
		Encoding:  meta.Charset,
		Filesize:  int64(len(body)),
		ETag:      fetch.CleanETag(meta.ETag),
		Extension: strings.TrimPrefix(filepath.Ext(filename), "."),
		Kind:      kind,
		Title:     title,
	}
	if group != nil {
		dl.GroupID = &group.ID
	}

	err = m.store.Transaction(ctx, func(tx store.Store) error {
		return tx.SaveDownload(ctx, dl)
	})
	if err != nil {
		// Keep disk and store consistent: without the record the file
		// would be an orphan on the next attempt.
		_ = os.Remove(target)
		return nil, err
	}
	return dl, nil
}

// Remove deletes a cached download and its backing file. A file-delete
// failure is logged but the record deletion proceeds: metadata consistency
// beats leaking a warning.
func (m *Manager) Remove(ctx context.Context, basename string) error {
	dl, err := m.store.GetDownloadByBasename(ctx, basename)
	if err != nil {
		return err
	}

	if err := os.Remove(m.Path(dl)); err != nil && !os.IsNotExist(err) {
		logrus.Errorf("remove download file %s: %v", dl.Filename, err)
	}

	return m.store.Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteDownload(ctx, basename)
	})
}

// TotalSize reports the bytes used by all cached files.
func (m *Manager) TotalSize(ctx context.Context) (int64, error) {
	return m.store.SumDownloadSizes(ctx)
}

// InferKind guesses what a URL points at from its path.
func InferKind(rawURL string) model.DownloadKind {
	base := strings.ToLower(fetch.Basename(rawURL))
	switch {
	case strings.HasPrefix(base, "agenda-"):
		return model.KindAgenda
	case strings.HasPrefix(base, "charter-"):
		return model.KindCharter
	case strings.HasPrefix(base, "minutes-"):
		return model.KindMinutes
	case strings.HasPrefix(base, "slides-"):
		return model.KindPresentation
	case strings.HasPrefix(base, "draft-"):
		return model.KindDraft
	case strings.HasPrefix(base, "rfc"):
		return model.KindRFC
	}
	return model.KindUnknown
}
