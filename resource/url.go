package resource

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// URLHandle is a stream-backed Handle for http and https URLs. Opening one
// blocks the calling goroutine on network I/O; the engine provides no
// timeout, so callers needing one should configure the client accordingly.
type URLHandle struct {
	u      *url.URL
	client *http.Client
}

// NewURLHandle returns a handle for u using http.DefaultClient.
func NewURLHandle(u *url.URL) *URLHandle {
	return &URLHandle{u: u, client: http.DefaultClient}
}

// NewURLHandleWithClient returns a handle for u using the given client.
func NewURLHandleWithClient(u *url.URL, client *http.Client) *URLHandle {
	return &URLHandle{u: u, client: client}
}

func (h *URLHandle) Name() string { return h.u.String() }

func (h *URLHandle) Exists() bool {
	resp, err := h.client.Head(h.u.String())
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (h *URLHandle) Open() (io.ReadCloser, error) {
	resp, err := h.client.Get(h.u.String())
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", errs.ErrResourceNotFound, h.u)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", errs.ErrAccessDenied, h.u)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("open %s: unexpected status %s", h.u, resp.Status)
	}
	return resp.Body, nil
}

// ModTime always reports unknown: a stream-backed resource carries no
// reliable modification metadata, so cached bundles built from one are never
// auto-refreshed.
func (h *URLHandle) ModTime() (time.Time, bool) {
	return time.Time{}, false
}

func (h *URLHandle) Relative(p string) (Handle, error) {
	rel, err := url.Parse(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errs.ErrMalformedLocation, p)
	}
	return &URLHandle{u: h.u.ResolveReference(rel), client: h.client}, nil
}
