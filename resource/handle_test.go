package resource

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

func readAll(t *testing.T, h Handle) string {
	t.Helper()
	r, err := h.Open()
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestFileHandle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.properties")
	require.NoError(t, os.WriteFile(path, []byte("greeting=Hello"), 0o644))

	h := NewFileHandle(path)
	assert.True(t, h.Exists())
	assert.Equal(t, "greeting=Hello", readAll(t, h))

	mod, ok := h.ModTime()
	assert.True(t, ok)
	assert.False(t, mod.IsZero())
}

func TestFileHandleMissing(t *testing.T) {
	h := NewFileHandle(filepath.Join(t.TempDir(), "absent.properties"))
	assert.False(t, h.Exists())

	_, err := h.Open()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrResourceNotFound))

	_, ok := h.ModTime()
	assert.False(t, ok)
}

func TestFileHandleDirectoryDoesNotExist(t *testing.T) {
	h := NewFileHandle(t.TempDir())
	assert.False(t, h.Exists())
}

func TestFileHandleRelative(t *testing.T) {
	h := NewFileHandle(filepath.Join("l10n", "messages_en.properties"))
	rel, err := h.Relative("messages_de.properties")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("l10n", "messages_de.properties"), rel.(*FileHandle).Path())
}

func TestFSHandle(t *testing.T) {
	fsys := fstest.MapFS{
		"l10n/messages.properties":    {Data: []byte("greeting=Hello")},
		"l10n/messages_de.properties": {Data: []byte("greeting=Hallo")},
	}

	h := NewFSHandle(fsys, "l10n/messages.properties")
	assert.True(t, h.Exists())
	assert.Equal(t, "greeting=Hello", readAll(t, h))

	// MapFS entries carry a zero mod time, so freshness is unknown.
	_, ok := h.ModTime()
	assert.False(t, ok)

	rel, err := h.Relative("messages_de.properties")
	require.NoError(t, err)
	assert.Equal(t, "greeting=Hallo", readAll(t, rel))
}

func TestFSHandleMissing(t *testing.T) {
	h := NewFSHandle(fstest.MapFS{}, "absent.properties")
	assert.False(t, h.Exists())

	_, err := h.Open()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrResourceNotFound))
}

func TestFSHandleModTimeWhenAvailable(t *testing.T) {
	mod := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	fsys := fstest.MapFS{
		"messages.properties": {Data: []byte("a=1"), ModTime: mod},
	}

	got, ok := NewFSHandle(fsys, "messages.properties").ModTime()
	require.True(t, ok)
	assert.Equal(t, mod, got)
}

func TestURLHandle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/messages.properties":
			io.WriteString(w, "greeting=Hello")
		case "/secret.properties":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL + "/messages.properties")
	require.NoError(t, err)

	h := NewURLHandleWithClient(base, srv.Client())
	assert.True(t, h.Exists())
	assert.Equal(t, "greeting=Hello", readAll(t, h))

	_, ok := h.ModTime()
	assert.False(t, ok, "stream resources have no freshness metadata")

	missing, err := h.Relative("absent.properties")
	require.NoError(t, err)
	assert.False(t, missing.Exists())
	_, err = missing.Open()
	assert.True(t, errors.Is(err, errs.ErrResourceNotFound))

	secret, err := h.Relative("secret.properties")
	require.NoError(t, err)
	_, err = secret.Open()
	assert.True(t, errors.Is(err, errs.ErrAccessDenied))
}

func TestMemoryHandle(t *testing.T) {
	h := NewMemoryHandle("messages.properties", []byte("greeting=Hello"))
	assert.True(t, h.Exists())
	assert.Equal(t, "mem:messages.properties", h.Name())
	assert.Equal(t, "greeting=Hello", readAll(t, h))

	before, ok := h.ModTime()
	require.True(t, ok)

	h.SetModTime(before.Add(time.Hour))
	after, _ := h.ModTime()
	assert.Equal(t, before.Add(time.Hour), after)

	h.Update([]byte("greeting=Hi"))
	assert.Equal(t, "greeting=Hi", readAll(t, h))
	updated, _ := h.ModTime()
	assert.True(t, updated.After(before) || updated.Equal(before))

	h.Remove()
	assert.False(t, h.Exists())
	_, err := h.Open()
	assert.True(t, errors.Is(err, errs.ErrResourceNotFound))
	_, ok = h.ModTime()
	assert.False(t, ok)
}

func TestAbsentMemoryHandleBecomesVisible(t *testing.T) {
	h := NewAbsentMemoryHandle("messages.properties")
	assert.False(t, h.Exists())

	h.Update([]byte("a=1"))
	assert.True(t, h.Exists())
	assert.Equal(t, "a=1", readAll(t, h))
}

func TestMemoryHandleRelative(t *testing.T) {
	h := NewMemoryHandle("l10n/messages_en.properties", nil)
	rel, err := h.Relative("messages_de.properties")
	require.NoError(t, err)
	assert.Equal(t, "mem:l10n/messages_de.properties", rel.Name())
	assert.False(t, rel.Exists())
}
