package repository

import (
	"context"
	"errors"

	"github.com/contentforge/contentforge/internal/content"
)

var (
	ErrNotFound = errors.New("content not found")
)

// Repository is the record-store adapter: five CRUD-shaped operations
// against one logical table plus a secondary index keyed by userId.
// Implementations perform no retries and no partial-failure handling;
// any underlying store error is returned wrapped for the caller to relay.
type Repository interface {
	// List performs an unordered full-table read.
	List(ctx context.Context) ([]*content.Record, error)
	// Get returns the record for id or ErrNotFound.
	Get(ctx context.Context, id string) (*content.Record, error)
	// ListByUser reads via the userId secondary index, newest-first.
	ListByUser(ctx context.Context, userID string) ([]*content.Record, error)
	// Put is an unconditional upsert overwriting the whole item.
	Put(ctx context.Context, rec *content.Record) error
	// Delete removes the record for id, ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
