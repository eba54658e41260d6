package datatracker

// PresentationPage is one page of /api/v1/meeting/sessionpresentation/.
type PresentationPage struct {
	Meta    PageMeta             `json:"meta"`
	Objects []PresentationObject `json:"objects"`
}

type PresentationObject struct {
	ResourceURI string `json:"resource_uri"`
	Name        string `json:"document"`
	Rev         string `json:"rev"`
	Title       string `json:"title"`
	Order       int    `json:"order"`
}
