package cfgsource_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatlonely/goflux/components/cfgsource"
	"github.com/hatlonely/goflux/internal/value"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileSourceLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cfg.json"), `{"a": 1}`)

	src, err := cfgsource.NewFileSourceWithConfig(cfgsource.FileSourceConfig{BaseDir: dir})
	require.NoError(t, err)
	defer src.Close()

	v, err := src.Load("cfg.json")
	require.NoError(t, err)
	assert.Equal(t, value.KindObject, v.Kind)
	got, ok := v.Object.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Int)
}

func TestFileSourceLoadFailsForUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	src, err := cfgsource.NewFileSourceWithConfig(cfgsource.FileSourceConfig{BaseDir: dir})
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Load("cfg.ini")
	assert.Error(t, err)
}

func TestFileSourceWatchDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	writeFile(t, path, `{"a": 1}`)

	src, err := cfgsource.NewFileSourceWithConfig(cfgsource.FileSourceConfig{BaseDir: dir})
	require.NoError(t, err)
	defer src.Close()

	changes := make(chan value.Value, 4)
	require.NoError(t, src.Watch("cfg.json", func(v value.Value) {
		changes <- v
	}))

	time.Sleep(20 * time.Millisecond)
	writeFile(t, path, `{"a": 2}`)

	select {
	case v := <-changes:
		got, ok := v.Object.Get("a")
		require.True(t, ok)
		assert.Equal(t, int64(2), got.Int)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestApolloSourceConfigValidation(t *testing.T) {
	_, err := cfgsource.NewApolloSourceWithConfig(cfgsource.ApolloSourceConfig{})
	assert.Error(t, err)

	_, err = cfgsource.NewApolloSourceWithConfig(cfgsource.ApolloSourceConfig{ServerURL: "http://localhost:8080"})
	assert.Error(t, err)
}

func TestApolloSourceLoadExtractsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"releaseKey": "r1",
			"configurations": map[string]interface{}{
				"database": `{"host": "db.local"}`,
			},
		})
	}))
	defer srv.Close()

	src, err := cfgsource.NewApolloSourceWithConfig(cfgsource.ApolloSourceConfig{
		ServerURL: srv.URL,
		AppID:     "test-app",
	})
	require.NoError(t, err)

	v, err := src.Load("database")
	require.NoError(t, err)
	got, ok := v.Object.Get("host")
	require.True(t, ok)
	assert.Equal(t, "db.local", got.String)
}
