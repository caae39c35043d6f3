package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contentforge/contentforge/internal/content"
	"github.com/contentforge/contentforge/internal/content/repository"
	"github.com/contentforge/contentforge/internal/identity"
)

func newTestService(start time.Time) (*Service, *time.Time) {
	cur := start
	svc := New(repository.NewMemoryRepo(), WithClock(func() time.Time { return cur }))
	return svc, &cur
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(start)
	ctx := context.Background()

	rec, err := svc.Create(ctx, identity.Anonymous(), CreateInput{Title: "T", ContentType: "blog", Content: "body"})
	require.NoError(t, err)
	require.Equal(t, "1714564800000", rec.ID)
	require.Equal(t, "2024-05-01T12:00:00.000Z", rec.CreatedAt)
	require.Empty(t, rec.UpdatedAt)
	require.Equal(t, identity.Unauthenticated, rec.UserID)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec, got)
}

func TestCreateHonorsCallerSuppliedIDAndCreatedAt(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	rec, err := svc.Create(ctx, identity.Anonymous(), CreateInput{ID: "custom-1", CreatedAt: "2020-01-01T00:00:00.000Z", Title: "T"})
	require.NoError(t, err)
	require.Equal(t, "custom-1", rec.ID)
	require.Equal(t, "2020-01-01T00:00:00.000Z", rec.CreatedAt)
}

func TestCreateStampsAuthenticatedOwner(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()
	caller := identity.Caller{Subject: "user-9", Authenticated: true}

	// the caller identity overrides any caller-supplied userId
	rec, err := svc.Create(ctx, caller, CreateInput{UserID: "someone-else", Title: "T"})
	require.NoError(t, err)
	require.Equal(t, "user-9", rec.UserID)
}

func TestCreateUniqueIDsInSameMillisecond(t *testing.T) {
	svc, _ := newTestService(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		rec, err := svc.Create(ctx, identity.Anonymous(), CreateInput{Title: "T"})
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)
		require.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}
}

func TestUpdateMergeSemantics(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, cur := newTestService(start)
	ctx := context.Background()
	owner := identity.Caller{Subject: "owner", Authenticated: true}

	rec, err := svc.Create(ctx, owner, CreateInput{Title: "old title", ContentType: "blog", Content: "old body"})
	require.NoError(t, err)

	*cur = start.Add(2 * time.Hour)
	title := "new title"
	updated, err := svc.Update(ctx, identity.Caller{Subject: "editor", Authenticated: true}, rec.ID, UpdateInput{Title: &title})
	require.NoError(t, err)

	require.Equal(t, "new title", updated.Title)
	require.Equal(t, "old body", updated.Content)
	require.Equal(t, rec.CreatedAt, updated.CreatedAt)
	require.Equal(t, "2024-05-01T14:00:00.000Z", updated.UpdatedAt)
	require.Greater(t, updated.UpdatedAt, updated.CreatedAt)
	// ownership survives updates by a different caller
	require.Equal(t, "owner", updated.UserID)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestUpdateMissingRecord(t *testing.T) {
	svc, _ := newTestService(time.Now())
	title := "x"
	_, err := svc.Update(context.Background(), identity.Anonymous(), "nope", UpdateInput{Title: &title})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, "nope"), repository.ErrNotFound)

	rec, err := svc.Create(ctx, identity.Anonymous(), CreateInput{Title: "T"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, rec.ID))
	_, err = svc.Get(ctx, rec.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListByUserRequiresIdentity(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	_, err := svc.ListByUser(ctx, identity.Anonymous(), "alice")
	require.ErrorIs(t, err, ErrUnauthorized)

	caller := identity.Caller{Subject: "alice", Authenticated: true}
	_, err = svc.Create(ctx, caller, CreateInput{Title: "mine"})
	require.NoError(t, err)

	recs, err := svc.ListByUser(ctx, caller, "alice")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "mine", recs[0].Title)
}

func TestCreateRoundTripsThroughStore(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	rec, err := svc.Create(ctx, identity.Anonymous(), CreateInput{Title: "T", ContentType: content.TypeStory, Content: "once"})
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, rec.ID, all[0].ID)
}
