package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/contentforge/contentforge/internal/content"
	"github.com/contentforge/contentforge/internal/content/repository"
	"github.com/contentforge/contentforge/internal/identity"
)

var (
	// ErrUnauthorized is returned by identity-scoped reads when the caller
	// identity cannot be resolved.
	ErrUnauthorized = errors.New("unauthorized")
)

// CreateInput is the caller-supplied partial record for Create. Empty id
// and createdAt are assigned by the service.
type CreateInput struct {
	ID          string
	UserID      string
	Title       string
	ContentType string
	Content     string
	CreatedAt   string
}

// UpdateInput carries the merge fields for Update. Nil fields keep the
// stored value; id, userId and createdAt are never taken from callers.
type UpdateInput struct {
	Title       *string
	ContentType *string
	Content     *string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service validates and normalizes content records and dispatches to the
// record store. Every mutating operation performs exactly one existence
// read (update/delete) and one write; no batching, no transactions.
type Service struct {
	repo repository.Repository
	now  func() time.Time

	mu     sync.Mutex
	lastID int64
}

func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRecordID issues a millisecond-timestamp id, bumped under the lock so
// two assignments in the same millisecond still differ.
func (s *Service) NewRecordID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *Service) ListAll(ctx context.Context) ([]*content.Record, error) {
	return s.repo.List(ctx)
}

// ListByUser requires a resolved caller identity; the userId queried is
// the one requested, read through the secondary index newest-first.
func (s *Service) ListByUser(ctx context.Context, caller identity.Caller, userID string) ([]*content.Record, error) {
	if !caller.Authenticated {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id string) (*content.Record, error) {
	return s.repo.Get(ctx, id)
}

// Create assigns id and createdAt when absent, stamps the owner from the
// caller identity (UNAUTH sentinel when unresolved) and persists the
// record verbatim otherwise.
func (s *Service) Create(ctx context.Context, caller identity.Caller, in CreateInput) (*content.Record, error) {
	rec := &content.Record{
		ID:          in.ID,
		UserID:      caller.Owner(in.UserID),
		Title:       in.Title,
		ContentType: in.ContentType,
		Content:     in.Content,
		CreatedAt:   in.CreatedAt,
	}
	if rec.ID == "" {
		rec.ID = s.NewRecordID()
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = content.FormatTime(s.now())
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update fetches the stored record and shallow-merges the input over it.
// The path id wins, createdAt and the original owner are preserved, and
// updatedAt is stamped with the current time.
func (s *Service) Update(ctx context.Context, caller identity.Caller, id string, in UpdateInput) (*content.Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := *existing
	rec.ID = id
	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.ContentType != nil {
		rec.ContentType = *in.ContentType
	}
	if in.Content != nil {
		rec.Content = *in.Content
	}
	rec.UpdatedAt = content.FormatTime(s.now())
	if err := s.repo.Put(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete checks existence first so a missing id surfaces as NotFound
// rather than a silent no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
