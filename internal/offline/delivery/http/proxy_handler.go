package http

import (
	"errors"
	"io"
	"net/http"

	"sp500-screener/internal/offline/dto"
	"sp500-screener/internal/offline/service"
	"sp500-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

const cacheStatusHeader = "X-Cache"

// forwardedHeaders are the request headers passed on to the origin.
var forwardedHeaders = []string{
	echo.HeaderAccept,
	"Accept-Language",
	echo.HeaderContentType,
	"User-Agent",
}

// ProxyHandler intercepts every request and answers through the worker.
type ProxyHandler struct {
	workerService service.WorkerService
	logger        *logger.Logger
}

// NewProxyHandler creates a new ProxyHandler.
func NewProxyHandler(workerService service.WorkerService, logger *logger.Logger) *ProxyHandler {
	return &ProxyHandler{workerService: workerService, logger: logger}
}

// RegisterRoutes registers the health check and the catch-all proxy route.
func (h *ProxyHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.Any("/*", h.Proxy)
}

// Health returns application health status.
func (h *ProxyHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Proxy serves the request cache-first. When neither the network nor the
// cache can answer, the client gets an empty 502.
func (h *ProxyHandler) Proxy(c echo.Context) error {
	req := c.Request()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	header := make(http.Header)
	for _, name := range forwardedHeaders {
		if v := req.Header.Get(name); v != "" {
			header.Set(name, v)
		}
	}

	result, err := h.workerService.Fetch(req.Context(), dto.FetchRequest{
		Method: req.Method,
		Path:   req.URL.RequestURI(),
		Header: header,
		Body:   body,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoCachedResponse) {
			h.logger.Warn("No response available", logger.StringField("path", req.URL.RequestURI()), logger.ErrorField(err))
			return c.NoContent(http.StatusBadGateway)
		}
		h.logger.Error("Failed to fetch", logger.ErrorField(err), logger.StringField("path", req.URL.RequestURI()))
		return c.NoContent(http.StatusInternalServerError)
	}

	resp := result.Response
	out := c.Response().Header()
	for key, values := range resp.Header {
		for _, v := range values {
			out.Add(key, v)
		}
	}
	out.Del(echo.HeaderContentLength)
	if result.FromCache {
		out.Set(cacheStatusHeader, "HIT")
	} else {
		out.Set(cacheStatusHeader, "MISS")
	}

	c.Response().WriteHeader(resp.StatusCode)
	if req.Method == http.MethodHead {
		return nil
	}
	_, err = c.Response().Write(resp.Body)
	return err
}
