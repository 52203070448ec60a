package resource

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// FSHandle is a Handle backed by an io/fs filesystem. It is the classpath
// equivalent: the embedding application supplies the fs.FS (typically an
// embed.FS) mapping logical paths to packaged resources.
type FSHandle struct {
	fsys fs.FS
	name string
}

// NewFSHandle returns a handle for name within fsys. Names use slash paths
// relative to the filesystem root.
func NewFSHandle(fsys fs.FS, name string) *FSHandle {
	return &FSHandle{fsys: fsys, name: cleanFSName(name)}
}

func cleanFSName(name string) string {
	name = path.Clean("/" + name)
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	if name == "" {
		name = "."
	}
	return name
}

func (f *FSHandle) Name() string { return "fs:" + f.name }

func (f *FSHandle) Exists() bool {
	info, err := fs.Stat(f.fsys, f.name)
	return err == nil && !info.IsDir()
}

func (f *FSHandle) Open() (io.ReadCloser, error) {
	r, err := f.fsys.Open(f.name)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", errs.ErrResourceNotFound, f.name)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %s", errs.ErrAccessDenied, f.name)
		}
		return nil, err
	}
	return r, nil
}

// ModTime reports false for filesystems without modification metadata;
// embed.FS entries carry a zero time and are treated as permanently fresh.
func (f *FSHandle) ModTime() (time.Time, bool) {
	info, err := fs.Stat(f.fsys, f.name)
	if err != nil || info.ModTime().IsZero() {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (f *FSHandle) Relative(p string) (Handle, error) {
	return NewFSHandle(f.fsys, relativeTo(f.name, p)), nil
}
