// Package sync reconciles remote datatracker collections into the local
// store. Each operation decodes a payload, upserts entities keyed by their
// natural remote identifiers, and saves only when a field actually changed,
// so repeated runs against identical payloads converge without writes.
package sync

import (
	"ietfmeet/internal/fetch"
	"ietfmeet/internal/store"
)

const DefaultBaseURL = "https://datatracker.ietf.org"

type Syncer struct {
	store  store.Store
	client *fetch.Client
	base   string
}

func NewSyncer(st store.Store, client *fetch.Client, base string) *Syncer {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Syncer{
		store:  st,
		client: client,
		base:   base,
	}
}
