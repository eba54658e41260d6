// Package rfcindex imports the RFC editor's full index into the local store.
package rfcindex

import (
	"encoding/xml"
	"strings"
	"time"
)

// Index is the rfc-index.xml document. Only rfc-entry elements are imported;
// the bcp/std/fyi entry lists surface through each entry's is-also names.
type Index struct {
	XMLName xml.Name `xml:"rfc-index"`
	Entries []Entry  `xml:"rfc-entry"`
}

// Entry is one rfc-entry element.
type Entry struct {
	DocID             string      `xml:"doc-id"` // e.g. "RFC8259"
	Title             string      `xml:"title"`
	Authors           []Author    `xml:"author"`
	Date              Date        `xml:"date"`
	Formats           []string    `xml:"format>file-format"`
	PageCount         int         `xml:"page-count"`
	Keywords          []string    `xml:"keywords>kw"`
	Abstract          []Paragraph `xml:"abstract>p"`
	Draft             string      `xml:"draft"`
	Updates           []string    `xml:"updates>doc-id"`
	Obsoletes         []string    `xml:"obsoletes>doc-id"`
	IsAlso            []string    `xml:"is-also>doc-id"`
	CurrentStatus     string      `xml:"current-status"`
	PublicationStatus string      `xml:"publication-status"`
	Stream            string      `xml:"stream"`
	Area              string      `xml:"area"`
	WGAcronym         string      `xml:"wg_acronym"`
	ErrataURL         string      `xml:"errata-url"`
	DOI               string      `xml:"doi"`
}

type Author struct {
	Name  string `xml:"name"`
	Title string `xml:"title"`
}

type Date struct {
	Month string `xml:"month"`
	Day   int    `xml:"day"`
	Year  int    `xml:"year"`
}

type Paragraph struct {
	Text string `xml:",chardata"`
}

// Parse decodes a raw rfc-index.xml body.
func Parse(body []byte) (*Index, error) {
	var idx Index
	if err := xml.Unmarshal(body, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// AbstractText joins the abstract paragraphs into one string.
func (e *Entry) AbstractText() string {
	parts := make([]string, 0, len(e.Abstract))
	for _, p := range e.Abstract {
		if t := strings.TrimSpace(p.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// PublishedDate resolves the entry's publication instant. The index carries
// month and year (rarely a day); absent days default to the first of the
// month.
func (e *Entry) PublishedDate() *time.Time {
	if e.Date.Year == 0 {
		return nil
	}
	month := monthByName(e.Date.Month)
	if month == 0 {
		return nil
	}
	day := e.Date.Day
	if day == 0 {
		day = 1
	}
	t := time.Date(e.Date.Year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func monthByName(name string) time.Month {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(name, m.String()) {
			return m
		}
	}
	return 0
}

// CrossRefs splits the is-also names into the BCP, FYI and STD series
// cross-references.
func (e *Entry) CrossRefs() (bcp, fyi, std string) {
	for _, name := range e.IsAlso {
		switch {
		case strings.HasPrefix(name, "BCP"):
			bcp = name
		case strings.HasPrefix(name, "FYI"):
			fyi = name
		case strings.HasPrefix(name, "STD"):
			std = name
		}
	}
	return bcp, fyi, std
}
