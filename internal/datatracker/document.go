package datatracker

// DocumentPage is one page of the /api/v1/doc/document/ list endpoints.
type DocumentPage struct {
	Meta    PageMeta         `json:"meta"`
	Objects []DocumentObject `json:"objects"`
}

type DocumentObject struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Rev              string `json:"rev"`
	Title            string `json:"title"`
	Type             string `json:"type"`
	Abstract         string `json:"abstract"`
	Pages            int    `json:"pages"`
	Stream           string `json:"stream"`
	StdLevel         string `json:"std_level"`
	IntendedStdLevel string `json:"intended_std_level"`
	ExternalURL      string `json:"external_url"`
	Time             string `json:"time"` // RFC3339
}
