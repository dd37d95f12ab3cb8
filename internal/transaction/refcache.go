package transaction

import (
	"context"
	"fmt"
)

// RefCache maps lowercased reference names to ids for one persistence batch.
// It is read-through: a miss creates the row through the batch and remembers it.
type RefCache struct {
	entries map[RefKind]map[string]int64
	created int
}

func NewRefCache() *RefCache {
	return &RefCache{
		entries: map[RefKind]map[string]int64{
			RefCategory:    {},
			RefPerson:      {},
			RefAccountType: {},
		},
	}
}

// Put records an existing reference row.
func (c *RefCache) Put(kind RefKind, name string, id int64) {
	m, ok := c.entries[kind]
	if !ok {
		m = map[string]int64{}
		c.entries[kind] = m
	}

	m[normalizeName(name)] = id
}

// Lookup returns the cached id for name.
func (c *RefCache) Lookup(kind RefKind, name string) (int64, bool) {
	id, ok := c.entries[kind][normalizeName(name)]
	return id, ok
}

// Len returns the number of cached names of a kind.
func (c *RefCache) Len(kind RefKind) int {
	return len(c.entries[kind])
}

// Created counts rows created through Resolve.
func (c *RefCache) Created() int {
	return c.created
}

// ReferenceCreator is the part of a Batch that inserts missing reference rows.
type ReferenceCreator interface {
	CreateReference(ctx context.Context, kind RefKind, name string) (int64, error)
}

// Resolve returns the id for name, creating the row on a cache miss.
func (c *RefCache) Resolve(ctx context.Context, creator ReferenceCreator, kind RefKind, name string) (int64, error) {
	if id, ok := c.Lookup(kind, name); ok {
		return id, nil
	}

	id, err := creator.CreateReference(ctx, kind, name)
	if err != nil {
		return 0, fmt.Errorf("create %s %q: %w", kind, name, err)
	}

	c.Put(kind, name, id)
	c.created++

	return id, nil
}
