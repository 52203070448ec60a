package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

func TestLocateEmptyLocation(t *testing.T) {
	_, err := NewLocator().Locate("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrConfiguration))
}

func TestLocateRelativePath(t *testing.T) {
	l := NewLocator(WithRoot("/data/l10n"))
	h, err := l.Locate("messages_en.properties")
	require.NoError(t, err)

	fh, ok := h.(*FileHandle)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/data/l10n", "messages_en.properties"), fh.Path())
}

func TestLocateAbsolutePathUsesRoot(t *testing.T) {
	l := NewLocator(WithRoot("/data"))
	h, err := l.Locate("/l10n/messages.properties")
	require.NoError(t, err)

	fh, ok := h.(*FileHandle)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/data", "l10n", "messages.properties"), fh.Path())
}

func TestLocateClasspath(t *testing.T) {
	fsys := fstest.MapFS{
		"l10n/messages.properties": {Data: []byte("greeting=Hello")},
	}
	l := NewLocator(WithClasspath(fsys))

	h, err := l.Locate("classpath:l10n/messages.properties")
	require.NoError(t, err)
	assert.True(t, h.Exists())
	assert.Equal(t, "fs:l10n/messages.properties", h.Name())

	h, err = l.Locate("classpath:/l10n/messages.properties")
	require.NoError(t, err)
	assert.True(t, h.Exists(), "leading slash is tolerated")
}

func TestLocateClasspathWithoutFilesystem(t *testing.T) {
	_, err := NewLocator().Locate("classpath:l10n/messages.properties")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrResourceNotFound))
}

func TestLocateFileURL(t *testing.T) {
	l := NewLocator(WithRoot("/ignored"))
	h, err := l.Locate("file:///var/l10n/messages.properties")
	require.NoError(t, err)

	fh, ok := h.(*FileHandle)
	require.True(t, ok)
	assert.Equal(t, filepath.FromSlash("/var/l10n/messages.properties"), fh.Path())
}

func TestLocateHTTPURL(t *testing.T) {
	h, err := NewLocator().Locate("https://example.com/l10n/messages.properties")
	require.NoError(t, err)

	uh, ok := h.(*URLHandle)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/l10n/messages.properties", uh.Name())
}

func TestLocateUnknownScheme(t *testing.T) {
	_, err := NewLocator().Locate("ftp://example.com/messages.properties")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrResourceNotFound))
}

func TestLocateMalformedURL(t *testing.T) {
	_, err := NewLocator().Locate("http://bad host/a%zz://x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrMalformedLocation))
}

func TestProtocolResolverPrecedence(t *testing.T) {
	l := NewLocator(WithRoot("/data"))
	custom := NewMemoryHandle("custom", []byte("a=1"))

	// A registered resolver sees every location first, even ones a built-in
	// strategy would otherwise claim.
	l.AddProtocolResolver(ProtocolResolverFunc(func(location string, _ *Locator) Handle {
		if location == "/shadowed.properties" {
			return custom
		}
		return nil
	}))

	h, err := l.Locate("/shadowed.properties")
	require.NoError(t, err)
	assert.Same(t, Handle(custom), h)

	// Unclaimed locations fall through to the built-ins.
	h, err = l.Locate("/other.properties")
	require.NoError(t, err)
	_, ok := h.(*FileHandle)
	assert.True(t, ok)
}

func TestProtocolResolverRegistrationOrder(t *testing.T) {
	l := NewLocator()
	first := NewMemoryHandle("first", nil)
	second := NewMemoryHandle("second", nil)

	l.AddProtocolResolver(ProtocolResolverFunc(func(string, *Locator) Handle { return first }))
	l.AddProtocolResolver(ProtocolResolverFunc(func(string, *Locator) Handle { return second }))

	h, err := l.Locate("anything")
	require.NoError(t, err)
	assert.Same(t, Handle(first), h)
	assert.Len(t, l.ProtocolResolvers(), 2)
}

func TestLocateEndToEndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.properties")
	require.NoError(t, os.WriteFile(path, []byte("greeting=Hello"), 0o644))

	l := NewLocator(WithRoot(dir))
	h, err := l.Locate("messages.properties")
	require.NoError(t, err)
	require.True(t, h.Exists())

	r, err := h.Open()
	require.NoError(t, err)
	defer r.Close()
	_, hasMod := h.ModTime()
	assert.True(t, hasMod)
}
