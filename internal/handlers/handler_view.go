package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
	"github.com/ledgerline/bookkeeping_app/internal/dto"
	"github.com/ledgerline/bookkeeping_app/internal/middleware"
	"golang.org/x/sync/errgroup"
)

// viewHandler exposes the single view session held by the transaction
// coordinator: snapshot, filter changes and page moves.
type viewHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newViewHandler(ts portssvc.TransactionSvcFacade) *viewHandler {
	return &viewHandler{
		transactionService: ts,
	}
}

// registerViewRoutes registers routes related to the view session.
func registerViewRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newViewHandler(transactionService)

	view := rg.Group("/view")
	{
		view.GET("", h.getView)
		view.PUT("/filters", h.updateFilters)
		view.PUT("/page", h.updatePage)
	}
}

// getView godoc
// @Summary Get the view session snapshot
// @Description Returns the current table page, dashboard aggregates and loading/error flags
// @Tags view
// @Produce  json
// @Success 200 {object} dto.ViewResponse
// @Router /view [get]
func (h *viewHandler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToViewResponse(h.transactionService.View()))
}

// updateFilters godoc
// @Summary Change the view session filters
// @Description Merges a partial filter update, resets to page 1 and refetches both views
// @Tags view
// @Accept  json
// @Produce  json
// @Param   filters body dto.UpdateFiltersRequest true "Filter changes"
// @Success 200 {object} dto.ViewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /view/filters [put]
func (h *viewHandler) updateFilters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFilters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	filters := h.transactionService.SetFilters(req.ToFilterUpdate())
	logger.Info("View filters updated", slog.String("mode", string(filters.Mode)))

	// Refetch both views under the new filters. Failures land in the view
	// state, so the snapshot below reflects them either way.
	var g errgroup.Group
	ctx := c.Request.Context()
	g.Go(func() error { return h.transactionService.RefreshPage(ctx) })
	g.Go(func() error { return h.transactionService.RefreshFull(ctx) })
	if err := g.Wait(); err != nil {
		logger.Warn("View refresh after filter change failed", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.ToViewResponse(h.transactionService.View()))
}

// updatePage godoc
// @Summary Move the view session to another page
// @Description Sets the page (and optionally page size), then refetches the table page
// @Tags view
// @Accept  json
// @Produce  json
// @Param   page body dto.UpdateViewPageRequest true "Page move"
// @Success 200 {object} dto.ViewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /view/page [put]
func (h *viewHandler) updatePage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateViewPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateViewPage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if req.PageSize != nil {
		h.transactionService.SetPageSize(*req.PageSize)
	}
	h.transactionService.SetPage(req.Page)

	if err := h.transactionService.RefreshPage(c.Request.Context()); err != nil {
		logger.Warn("Page refresh failed", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.ToViewResponse(h.transactionService.View()))
}
