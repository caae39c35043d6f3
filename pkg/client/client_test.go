package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/contentforge/contentforge/handlers"
	"github.com/contentforge/contentforge/internal/content/repository"
	"github.com/contentforge/contentforge/internal/content/service"
	"github.com/contentforge/contentforge/internal/generator"
	"github.com/contentforge/contentforge/pkg/client"
	"github.com/contentforge/contentforge/pkg/middleware"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Cors())
	svc := service.New(repository.NewMemoryRepo())
	h := handlers.NewContentHandler(svc, generator.NewTemplateGenerator(), "template")
	h.Register(r, middleware.Identity(nil))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	cli := client.New(srv.URL)
	ctx := context.Background()

	created, err := cli.Create(ctx, client.CreateRequest{Title: "T", ContentType: "blog", Content: "body"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.Content)

	got, err := cli.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "T", got.Title)

	all, err := cli.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	title := "T2"
	updated, err := cli.Update(ctx, created.ID, client.UpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "T2", updated.Content.Title)
	require.Equal(t, "body", updated.Content.Content)

	deleted, err := cli.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)

	_, err = cli.Get(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Status)
	require.Equal(t, "Content not found", apiErr.Message)
}

func TestClientGenerateThenCreate(t *testing.T) {
	srv := newTestServer(t)
	cli := client.New(srv.URL)
	ctx := context.Background()

	rec, err := cli.Generate(ctx, client.GenerateRequest{Title: "T", ContentType: "story", Prompt: "dragons"})
	require.NoError(t, err)
	require.Contains(t, rec.Content, "dragons")

	// generate does not persist; a follow-up create does
	_, err = cli.Get(ctx, rec.ID)
	require.Error(t, err)

	saved, err := cli.Create(ctx, client.CreateRequest{
		ID:          rec.ID,
		Title:       rec.Title,
		ContentType: rec.ContentType,
		Content:     rec.Content,
		CreatedAt:   rec.CreatedAt,
	})
	require.NoError(t, err)
	require.Equal(t, rec.ID, saved.ID)

	got, err := cli.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Content, got.Content)
}

func TestClientGenerateValidationError(t *testing.T) {
	srv := newTestServer(t)
	cli := client.New(srv.URL)

	_, err := cli.Generate(context.Background(), client.GenerateRequest{Title: "T"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 400, apiErr.Status)
}
