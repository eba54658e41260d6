package fetch

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"ietfmeet/internal/compress"
)

// Meta describes the response of a file fetch: everything the download cache
// needs to persist alongside the bytes.
type Meta struct {
	StatusCode        int
	SuggestedFilename string
	MimeType          string
	Charset           string
	ETag              string
	LastModified      string
}

// Client performs conditional HTTP GETs against the datatracker and the RFC
// editor. All methods complete (or fail) before any store transaction begins;
// callers must not hold a transaction open across a call.
type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewClientWith uses a caller-supplied http.Client, mainly for tests.
func NewClientWith(hc *http.Client) *Client {
	return &Client{http: hc}
}

// GetJSON fetches url and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, hdr http.Header, out any) error {
	body, _, err := c.get(ctx, rawURL, hdr)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// GetXML fetches url and decodes the XML body into out. The conditional
// headers and Accept-Encoding are the caller's responsibility; a gzip or
// brotli encoded body is transparently decompressed.
func (c *Client) GetXML(ctx context.Context, rawURL string, hdr http.Header, out any) (Meta, error) {
	body, meta, err := c.get(ctx, rawURL, hdr)
	if err != nil {
		return meta, err
	}
	if err := xml.Unmarshal(body, out); err != nil {
		return meta, &DecodeError{Err: err}
	}
	return meta, nil
}

// GetFile fetches url and returns the raw body with its response metadata.
func (c *Client) GetFile(ctx context.Context, rawURL string, hdr http.Header) ([]byte, Meta, error) {
	return c.get(ctx, rawURL, hdr)
}

func (c *Client) get(ctx context.Context, rawURL string, hdr http.Header) ([]byte, Meta, error) {
	var meta Meta

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, meta, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, meta, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer res.Body.Close()

	meta = metaFrom(rawURL, res)

	if res.StatusCode == http.StatusNotModified {
		return nil, meta, ErrNotModified
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, meta, &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, meta, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}

	// The transport only undoes gzip it negotiated itself. When the caller
	// forces Accept-Encoding the body arrives still compressed.
	body, err = decode(body, res.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, meta, &DecodeError{Err: err}
	}

	return body, meta, nil
}

func decode(body []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "", "identity":
		return compress.NewNop().Decode(body)
	case "gzip":
		return compress.NewGZip().Decode(body)
	case "br":
		return compress.NewBrotli().Decode(body)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

func metaFrom(rawURL string, res *http.Response) Meta {
	meta := Meta{
		StatusCode:   res.StatusCode,
		ETag:         res.Header.Get("Etag"),
		LastModified: res.Header.Get("Last-Modified"),
	}

	if ct := res.Header.Get("Content-Type"); ct != "" {
		if mt, params, err := mime.ParseMediaType(ct); err == nil {
			meta.MimeType = mt
			meta.Charset = params["charset"]
		}
	}

	meta.SuggestedFilename = suggestedFilename(rawURL, res.Header.Get("Content-Disposition"))
	return meta
}

// suggestedFilename prefers the server's Content-Disposition filename and
// falls back to the URL's basename.
func suggestedFilename(rawURL, disposition string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := path.Base(params["filename"]); name != "" && name != "." && name != "/" {
				return name
			}
		}
	}
	return Basename(rawURL)
}

// Basename returns the last path component of a URL, the natural de-dup key
// for downloads.
func Basename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(u.Path)
}

// CleanETag strips the weak-validator prefix, surrounding quotes and any
// compression suffix (e.g. "-gzip") the server appended, so the stored value
// matches what the origin compares If-None-Match against.
func CleanETag(etag string) string {
	etag = strings.TrimPrefix(etag, "W/")
	etag = strings.Trim(etag, `"`)
	for _, suffix := range []string{"-gzip", "-br"} {
		etag = strings.TrimSuffix(etag, suffix)
	}
	return etag
}
