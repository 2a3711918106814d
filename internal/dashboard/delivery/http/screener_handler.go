package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sp500-screener/internal/dashboard/dto"
	"sp500-screener/internal/dashboard/service"
	"sp500-screener/pkg/common"
	"sp500-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScreenerHandler handles the screener page and its JSON mirror. The whole
// view state travels in the request, so every GET response is a pure function
// of its URL and the loaded dataset, and is safe to cache per URL.
type ScreenerHandler struct {
	screenerService service.ScreenerService
	logger          *logger.Logger
}

// NewScreenerHandler creates a new ScreenerHandler.
func NewScreenerHandler(screenerService service.ScreenerService, logger *logger.Logger) *ScreenerHandler {
	return &ScreenerHandler{screenerService: screenerService, logger: logger}
}

// RegisterPageRoutes registers the HTML routes.
func (h *ScreenerHandler) RegisterPageRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/index.html", h.Index)
	e.POST("/refresh", h.RefreshPage)
}

// RegisterRoutes registers the JSON routes to the Echo group.
func (h *ScreenerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetView)
	g.POST("/sort/:key", h.Sort)
	g.POST("/refresh", h.Refresh)
}

// Index renders the page for the view state in the query string.
func (h *ScreenerHandler) Index(c echo.Context) error {
	params, err := h.queryParams(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	h.ensureLoaded(c.Request().Context())

	view := h.screenerService.View(params)
	for i, col := range view.Columns {
		// Toggling a listed column cannot fail.
		next, _ := service.ToggleSort(params, col.Key)
		view.Columns[i].Href = pageURL(next)
	}
	return c.Render(http.StatusOK, "index.html", view)
}

// RefreshPage reloads the dataset and redirects back to the page. The sector
// selection is reset because the option list is rebuilt; the other inputs
// and the sort are kept. A failed load shows in the page status.
func (h *ScreenerHandler) RefreshPage(c echo.Context) error {
	var q dto.ViewQuery
	if err := (&echo.DefaultBinder{}).BindBody(c, &q); err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	params, err := service.ParamsFromQuery(q)
	if err != nil {
		params = service.DefaultParams()
	}
	params.Sector = common.AllSectors

	_ = h.screenerService.Load(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, pageURL(params))
}

// GetView godoc
// @Summary Get the screener view
// @Description Returns the rendered rows for the view state given in the query string.
// @Tags screener
// @Produce  json
// @Param   q          query  string  false  "Text filter on ticker or company"
// @Param   sector     query  string  false  "Sector filter, ALL disables it"
// @Param   only_pass  query  bool    false  "Keep only passing rows"
// @Param   sort       query  string  false  "Sort key, score by default"
// @Param   dir        query  int     false  "1 ascending, -1 descending (default)"
// @Success 200 {object} dto.PageView
// @Failure 400 {object} dto.ErrorResponse
// @Router /screener [get]
func (h *ScreenerHandler) GetView(c echo.Context) error {
	params, err := h.queryParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	h.ensureLoaded(c.Request().Context())
	return c.JSON(http.StatusOK, h.screenerService.View(params))
}

// Sort godoc
// @Summary Click a sortable header
// @Description Applies a header click to the view state in the query string: the active key flips direction, any other key sorts descending.
// @Tags screener
// @Produce  json
// @Param   key   path   string  true   "Row attribute"
// @Param   sort  query  string  false  "Current sort key"
// @Param   dir   query  int     false  "Current sort direction"
// @Success 200 {object} dto.PageView
// @Failure 400 {object} dto.ErrorResponse
// @Router /screener/sort/{key} [post]
func (h *ScreenerHandler) Sort(c echo.Context) error {
	params, err := h.queryParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	params, err = service.ToggleSort(params, c.Param("key"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, h.screenerService.View(params))
}

// Refresh godoc
// @Summary Reload the dataset
// @Description Fetches the dataset again, bypassing caches. On failure the previous rows are kept.
// @Tags screener
// @Produce  json
// @Success 200 {object} dto.PageView
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /screener/refresh [post]
func (h *ScreenerHandler) Refresh(c echo.Context) error {
	params, err := h.queryParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	if err := h.screenerService.Load(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, h.screenerService.View(params))
}

// Health returns application health status.
func (h *ScreenerHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ScreenerHandler) queryParams(c echo.Context) (service.Params, error) {
	var q dto.ViewQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return service.Params{}, err
	}
	return service.ParamsFromQuery(q)
}

// ensureLoaded loads the dataset on first use so no response is rendered
// from an empty, never loaded state.
func (h *ScreenerHandler) ensureLoaded(ctx context.Context) {
	if h.screenerService.Loaded() {
		return
	}
	if err := h.screenerService.Load(ctx); err != nil {
		h.logger.Warn("Rendering before the first successful load", logger.ErrorField(err))
	}
}

// pageURL encodes params as a page link. Default filter values are omitted.
func pageURL(p service.Params) string {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.Sector != "" && p.Sector != common.AllSectors {
		v.Set("sector", p.Sector)
	}
	if p.OnlyPass {
		v.Set("only_pass", "true")
	}
	v.Set("sort", p.SortKey)
	v.Set("dir", strconv.Itoa(p.SortDir))
	return "/?" + v.Encode()
}
