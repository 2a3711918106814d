package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sp500-screener/internal/offline/dto"
	"sp500-screener/internal/offline/service"
	"sp500-screener/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWorker struct {
	result  *dto.FetchResult
	err     error
	lastReq dto.FetchRequest
}

func (s *stubWorker) Install(ctx context.Context) error { return nil }

func (s *stubWorker) Fetch(ctx context.Context, req dto.FetchRequest) (*dto.FetchResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func newProxy(worker *stubWorker) *echo.Echo {
	e := echo.New()
	NewProxyHandler(worker, logger.NewNop()).RegisterRoutes(e)
	return e
}

func TestProxyHandler_Hit(t *testing.T) {
	worker := &stubWorker{result: &dto.FetchResult{
		Response: &dto.CachedResponse{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": {"text/css"}, "Content-Length": {"999"}},
			Body:       []byte("body{}"),
		},
		FromCache: true,
	}}
	e := newProxy(worker)

	req := httptest.NewRequest(http.MethodGet, "/styles.css?v=1", nil)
	req.Header.Set("Accept", "text/css")
	req.Header.Set("Cookie", "secret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
	assert.Equal(t, "text/css", rec.Header().Get("Content-Type"))
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	assert.Equal(t, http.MethodGet, worker.lastReq.Method)
	assert.Equal(t, "/styles.css?v=1", worker.lastReq.Path)
	assert.Equal(t, "text/css", worker.lastReq.Header.Get("Accept"))
	assert.Empty(t, worker.lastReq.Header.Get("Cookie"))
}

func TestProxyHandler_MissKeepsStatus(t *testing.T) {
	worker := &stubWorker{result: &dto.FetchResult{
		Response: &dto.CachedResponse{StatusCode: http.StatusNotFound, Header: http.Header{}, Body: []byte("nope")},
	}}
	rec := httptest.NewRecorder()
	newProxy(worker).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "nope", rec.Body.String())
}

func TestProxyHandler_HeadHasNoBody(t *testing.T) {
	worker := &stubWorker{result: &dto.FetchResult{
		Response: &dto.CachedResponse{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte("x")},
	}}
	rec := httptest.NewRecorder()
	newProxy(worker).ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestProxyHandler_NoResponseAvailable(t *testing.T) {
	worker := &stubWorker{err: fmt.Errorf("%w: offline", service.ErrNoCachedResponse)}
	rec := httptest.NewRecorder()
	newProxy(worker).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestProxyHandler_Health(t *testing.T) {
	worker := &stubWorker{}
	rec := httptest.NewRecorder()
	newProxy(worker).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Empty(t, worker.lastReq.Path)
}
