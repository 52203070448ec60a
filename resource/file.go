package resource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// FileHandle is a Handle backed by the OS filesystem.
type FileHandle struct {
	path string
}

// NewFileHandle returns a handle for the given filesystem path.
func NewFileHandle(path string) *FileHandle {
	return &FileHandle{path: filepath.Clean(path)}
}

// Path returns the underlying filesystem path.
func (f *FileHandle) Path() string { return f.path }

func (f *FileHandle) Name() string { return f.path }

func (f *FileHandle) Exists() bool {
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

func (f *FileHandle) Open() (io.ReadCloser, error) {
	r, err := os.Open(f.path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", errs.ErrResourceNotFound, f.path)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %s", errs.ErrAccessDenied, f.path)
		}
		return nil, err
	}
	return r, nil
}

func (f *FileHandle) ModTime() (time.Time, bool) {
	info, err := os.Stat(f.path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (f *FileHandle) Relative(p string) (Handle, error) {
	return NewFileHandle(filepath.Join(filepath.Dir(f.path), filepath.FromSlash(p))), nil
}
