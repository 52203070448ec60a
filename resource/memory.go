package resource

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// MemoryHandle is a mutable in-memory byte source, used for programmatic
// bundles and tests. Updating its content advances the modification time, so
// a TTL-checked cache observes the change like a rewritten file.
type MemoryHandle struct {
	mu     sync.RWMutex
	name   string
	data   []byte
	mod    time.Time
	absent bool
}

// NewMemoryHandle returns an existing handle holding data.
func NewMemoryHandle(name string, data []byte) *MemoryHandle {
	return &MemoryHandle{name: name, data: append([]byte(nil), data...), mod: time.Now()}
}

// NewAbsentMemoryHandle returns a handle for a resource that does not exist
// yet; a later Update makes it visible.
func NewAbsentMemoryHandle(name string) *MemoryHandle {
	return &MemoryHandle{name: name, absent: true}
}

// Update replaces the content and advances the modification time.
func (h *MemoryHandle) Update(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data = append([]byte(nil), data...)
	h.mod = time.Now()
	h.absent = false
}

// SetModTime overrides the modification time, keeping the content.
func (h *MemoryHandle) SetModTime(t time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mod = t
}

// Remove marks the resource absent.
func (h *MemoryHandle) Remove() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.absent = true
	h.data = nil
}

func (h *MemoryHandle) Name() string { return "mem:" + h.name }

func (h *MemoryHandle) Exists() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.absent
}

func (h *MemoryHandle) Open() (io.ReadCloser, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.absent {
		return nil, fmt.Errorf("%w: %s", errs.ErrResourceNotFound, h.name)
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), h.data...))), nil
}

func (h *MemoryHandle) ModTime() (time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.absent {
		return time.Time{}, false
	}
	return h.mod, true
}

// Relative derives a sibling name; the result is absent until written to.
func (h *MemoryHandle) Relative(p string) (Handle, error) {
	return NewAbsentMemoryHandle(relativeTo(h.name, p)), nil
}
