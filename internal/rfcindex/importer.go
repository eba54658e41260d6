package rfcindex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"ietfmeet/internal/fetch"
	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
)

const IndexURL = "https://www.rfc-editor.org/rfc-index.xml"

// State is the importer's observable phase.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateParsing
	StateImportingPass1
	StateImportingPass2
	StateSaving
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateParsing:
		return "parsing"
	case StateImportingPass1:
		return "importing-pass1"
	case StateImportingPass2:
		return "importing-pass2"
	case StateSaving:
		return "saving"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Importer performs the two-pass bulk import of the RFC index. Pass 1
// creates missing RFCs and defers the updates/obsoletes name lists into
// accumulator maps, because targets may appear later in the same index
// (forward references). Pass 2 resolves the deferred edges by name lookup.
// Both passes run inside one store transaction, so the whole import commits
// atomically. The importer has no internal rate limiting; callers throttle.
type Importer struct {
	store  store.Store
	client *fetch.Client
	url    string

	mu    sync.Mutex
	state State
}

func NewImporter(st store.Store, client *fetch.Client, url string) *Importer {
	if url == "" {
		url = IndexURL
	}
	return &Importer{
		store:  st,
		client: client,
		url:    url,
		state:  StateIdle,
	}
}

func (imp *Importer) State() State {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	return imp.state
}

func (imp *Importer) setState(s State) {
	imp.mu.Lock()
	imp.state = s
	imp.mu.Unlock()
}

// Run executes one import cycle. A 304 on the conditional fetch is success:
// the cycle is skipped and the importer returns to idle without touching the
// store.
func (imp *Importer) Run(ctx context.Context) error {
	imp.setState(StateFetching)

	hdr := http.Header{}
	hdr.Set("Accept-Encoding", "gzip")
	if etag, err := imp.store.GetSetting(ctx, model.SettingRFCETag); err == nil && etag != "" {
		hdr.Set("If-None-Match", `"`+etag+`"`)
	}

	body, meta, err := imp.client.GetFile(ctx, imp.url, hdr)
	if errors.Is(err, fetch.ErrNotModified) {
		imp.setState(StateIdle)
		return nil
	}
	if err != nil {
		imp.setState(StateFailed)
		return fmt.Errorf("fetch rfc index: %w", err)
	}

	// Persist the validators for the next cycle's conditional request
	// before any parsing or importing happens.
	if etag := fetch.CleanETag(meta.ETag); etag != "" {
		if err := imp.store.PutSetting(ctx, model.SettingRFCETag, etag); err != nil {
			logrus.Errorf("persist rfc index etag: %v", err)
		}
	}
	if meta.LastModified != "" {
		if err := imp.store.PutSetting(ctx, model.SettingRFCLastModified, meta.LastModified); err != nil {
			logrus.Errorf("persist rfc index last-modified: %v", err)
		}
	}

	imp.setState(StateParsing)
	index, err := Parse(body)
	if err != nil {
		imp.setState(StateFailed)
		return &fetch.DecodeError{Err: err}
	}

	err = imp.store.Transaction(ctx, func(tx store.Store) error {
		updates := make(map[string][]string)
		obsoletes := make(map[string][]string)

		imp.setState(StateImportingPass1)
		for i := range index.Entries {
			if err := importEntry(ctx, tx, &index.Entries[i], updates, obsoletes); err != nil {
				return err
			}
		}

		imp.setState(StateImportingPass2)
		if err := linkEdges(ctx, tx, updates, tx.LinkRFCUpdates); err != nil {
			return err
		}
		if err := linkEdges(ctx, tx, obsoletes, tx.LinkRFCObsoletes); err != nil {
			return err
		}

		imp.setState(StateSaving)
		return nil
	})
	if err != nil {
		imp.setState(StateFailed)
		return fmt.Errorf("import rfc index: %w", err)
	}

	imp.setState(StateIdle)
	return nil
}

// importEntry is pass 1 for one entry: create the RFC unless it already
// exists (published RFCs are immutable, so re-imports skip them entirely)
// and defer its edge name lists.
func importEntry(ctx context.Context, tx store.Store, e *Entry, updates, obsoletes map[string][]string) error {
	name := e.DocID
	if !strings.HasPrefix(name, "RFC") {
		return nil
	}

	_, err := tx.GetRFCByName(ctx, name)
	if err == nil {
		return nil
	}
	if !store.IsNotFound(err) {
		return err
	}

	bcp, fyi, std := e.CrossRefs()
	r := &model.RFC{
		Name:              name,
		Title:             e.Title,
		Abstract:          e.AbstractText(),
		Area:              e.Area,
		Stream:            e.Stream,
		CurrentStatus:     e.CurrentStatus,
		PublicationStatus: e.PublicationStatus,
		DOI:               e.DOI,
		Draft:             e.Draft,
		ErrataURL:         e.ErrataURL,
		PageCount:         e.PageCount,
		BCP:               bcp,
		FYI:               fyi,
		STD:               std,
	}

	if published := e.PublishedDate(); published != nil {
		r.Published = published
		r.Month = int(published.Month())
		r.Year = published.Year()
	}

	for _, a := range e.Authors {
		author, err := tx.FirstOrCreateAuthor(ctx, a.Name)
		if err != nil {
			return err
		}
		r.Authors = append(r.Authors, author)
	}
	for _, f := range e.Formats {
		format, err := tx.FirstOrCreateFormat(ctx, f)
		if err != nil {
			return err
		}
		r.Formats = append(r.Formats, format)
	}
	for _, kw := range e.Keywords {
		keyword, err := tx.FirstOrCreateKeyword(ctx, kw)
		if err != nil {
			return err
		}
		r.Keywords = append(r.Keywords, keyword)
	}

	if err := tx.SaveRFC(ctx, r); err != nil {
		return err
	}

	if len(e.Updates) > 0 {
		updates[name] = e.Updates
	}
	if len(e.Obsoletes) > 0 {
		obsoletes[name] = e.Obsoletes
	}
	return nil
}

// linkEdges is pass 2: resolve each deferred (source, targets) pair by name
// and link the ones where both ends exist. The inverse direction needs no
// separate write; it is the same edge rows read backwards.
func linkEdges(ctx context.Context, tx store.Store, edges map[string][]string, link func(ctx context.Context, src, dst *model.RFC) error) error {
	for srcName, targets := range edges {
		src, err := tx.GetRFCByName(ctx, srcName)
		if store.IsNotFound(err) {
			continue
		}
		if err != nil {
			return err
		}
		for _, dstName := range targets {
			dst, err := tx.GetRFCByName(ctx, dstName)
			if store.IsNotFound(err) {
				continue
			}
			if err != nil {
				return err
			}
			if err := link(ctx, src, dst); err != nil {
				return err
			}
		}
	}
	return nil
}
