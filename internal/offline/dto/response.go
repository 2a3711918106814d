package dto

import (
	"net/http"
	"slices"
)

// FetchRequest is an intercepted request, detached from the inbound connection.
type FetchRequest struct {
	Method string
	// Path is the request URI relative to the origin, query string included.
	Path   string
	Header http.Header
	Body   []byte
}

// CachedResponse is a fully buffered response, safe to store and replay.
type CachedResponse struct {
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
}

// Clone returns a deep copy so the stored entry never aliases the returned one.
func (r *CachedResponse) Clone() *CachedResponse {
	if r == nil {
		return nil
	}
	return &CachedResponse{
		StatusCode: r.StatusCode,
		Header:     r.Header.Clone(),
		Body:       slices.Clone(r.Body),
	}
}

// IsSuccess reports a 2xx status.
func (r *CachedResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// FetchResult is the outcome of an intercepted fetch.
type FetchResult struct {
	Response  *CachedResponse
	FromCache bool
}
