package store

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

var (
	ErrStoreNotReady = errors.New("store not initialized")
)

// Provider hands out the shared Store. The CLI and the background jobs both
// resolve the store through a provider so the underlying DB is opened once.
type Provider interface {
	Provide() (Store, error)
}

// LazyProvider opens the database on first use and memoizes the store.
type LazyProvider struct {
	open  func() (*gorm.DB, error)
	once  sync.Once
	store Store
	err   error
}

func NewLazyProvider(open func() (*gorm.DB, error)) *LazyProvider {
	return &LazyProvider{open: open}
}

func (p *LazyProvider) Provide() (Store, error) {
	p.once.Do(func() {
		db, err := p.open()
		if err != nil {
			p.err = err
			return
		}
		p.store = NewGormStore(db)
	})
	if p.err != nil {
		return nil, p.err
	}
	if p.store == nil {
		return nil, ErrStoreNotReady
	}
	return p.store, nil
}

// DefaultProvider wraps an already-open store.
type DefaultProvider struct {
	store Store
}

func NewDefaultProvider(s Store) *DefaultProvider {
	return &DefaultProvider{store: s}
}

func (p *DefaultProvider) Provide() (Store, error) {
	return p.store, nil
}
