package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) CompletionConfig {
	return CompletionConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "test-model",
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}

func TestOpenAIGeneratorSuccess(t *testing.T) {
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"text":"  generated body \n"}]}`))
	}))
	defer srv.Close()

	g := NewOpenAIGenerator(testConfig(srv.URL))
	out, err := g.Generate(context.Background(), "My Title", "blog", "a topic")
	require.NoError(t, err)
	require.Equal(t, "generated body", out)

	require.Equal(t, "test-model", gotReq["model"])
	require.Equal(t, float64(1000), gotReq["max_tokens"])
	require.Equal(t, 0.7, gotReq["temperature"])
	require.Equal(t, `Create a blog with the title "My Title" about "a topic".`, gotReq["prompt"])
}

func TestOpenAIGeneratorProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewOpenAIGenerator(testConfig(srv.URL))
	_, err := g.Generate(context.Background(), "T", "blog", "p")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestOpenAIGeneratorEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g := NewOpenAIGenerator(testConfig(srv.URL))
	_, err := g.Generate(context.Background(), "T", "blog", "p")
	require.ErrorIs(t, err, ErrGenerationFailed)
}
