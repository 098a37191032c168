// Package persist stores and loads named, immutable blobs such as
// benchmark reports.
package persist

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jrhy/densemap"
)

// Persist is the interface for loading and storing serialized reports. A
// name always refers to the same content; stored content is never modified.
type Persist interface {
	// Store makes the given bytes accessible by the given name.
	Store(context.Context, string, []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(context.Context, string) ([]byte, error)
}

// StoreContent stores b under its content hash plus the given extension
// (e.g. ".json") and returns the name it was stored as.
func StoreContent(ctx context.Context, p Persist, ext string, b []byte) (string, error) {
	name := densemap.ContentHash(b) + ext
	if err := p.Store(ctx, name, b); err != nil {
		return "", fmt.Errorf("persist store: %w", err)
	}
	return name, nil
}

type inMemoryStore struct {
	entries map[string][]byte
	l       sync.Mutex
}

// NewInMemoryStore provides a Persist that keeps blobs in a map, usually for
// testing.
func NewInMemoryStore() Persist {
	return &inMemoryStore{}
}

func (ims *inMemoryStore) Store(ctx context.Context, key string, value []byte) error {
	value = slices.Clone(value)
	ims.l.Lock()
	if ims.entries == nil {
		ims.entries = map[string][]byte{key: value}
	} else {
		ims.entries[key] = value
	}
	ims.l.Unlock()
	return nil
}

func (ims *inMemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	ims.l.Lock()
	value, ok := ims.entries[key]
	ims.l.Unlock()
	if !ok {
		return nil, fmt.Errorf("inMemoryStore entry not found for %s", key)
	}
	return slices.Clone(value), nil
}
