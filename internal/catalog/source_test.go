package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fruitshop/basket/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kiwiYAML = `
products:
  - id: kiwi
    name: Kiwi
    emoji: "🥝"
    variants:
      - id: gold
        name: Golden
`

// TestLoad_Default verifies the built-in catalog is used without a source.
func TestLoad_Default(t *testing.T) {
	t.Parallel()

	c, err := Load(context.Background(), config.CatalogConfig{})
	require.NoError(t, err)
	assert.True(t, c.Contains("apple"))
	assert.Equal(t, 5, c.Len())
}

// TestLoadFile verifies a YAML catalog is parsed and normalized.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(kiwiYAML), 0o600))

	c, err := Load(context.Background(), config.CatalogConfig{Path: path})
	require.NoError(t, err)

	kiwi, ok := c.Lookup("kiwi")
	require.True(t, ok)
	assert.Equal(t, "🥝", kiwi.Glyph)
	require.Len(t, kiwi.Variants, 2)
	assert.Equal(t, "regular", kiwi.Variants[0].ID)
	assert.False(t, c.Contains("apple"))
}

// TestLoadFile_Errors verifies missing, empty and invalid files are rejected.
func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("products: []\n"), 0o600))
	_, err = LoadFile(empty)
	assert.Error(t, err)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("products:\n  - id: a\n  - id: a\n"), 0o600))
	_, err = LoadFile(dup)
	assert.Error(t, err)
}

// TestFetchRemote verifies a JSON catalog is downloaded and built.
func TestFetchRemote(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":"kiwi","name":"Kiwi","emoji":"🥝","variants":[{"id":"regular","name":"Regular"}]}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := Load(context.Background(), config.CatalogConfig{URL: srv.URL, Path: "ignored.yaml", Timeout: 5})
	require.NoError(t, err)
	assert.True(t, c.Contains("kiwi"))
}

// TestFetchRemote_HTTPError verifies error statuses are reported.
func TestFetchRemote_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	_, err := FetchRemote(context.Background(), srv.URL, 2*time.Second)
	assert.Error(t, err)
}

// TestFetchRemote_BadBody verifies an undecodable body is reported.
func TestFetchRemote_BadBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not a catalog</html>`))
	}))
	t.Cleanup(srv.Close)

	_, err := FetchRemote(context.Background(), srv.URL, 2*time.Second)
	assert.Error(t, err)
}
