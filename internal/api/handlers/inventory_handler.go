// backend-go/internal/api/handlers/inventory_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopsight/backend-go/internal/api/middleware"
	"github.com/shopsight/backend-go/internal/domain"
	"github.com/shopsight/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// parseDateRange reads the optional start/end query params. Accepts
// RFC3339 or plain dates; a reversed range is normalized, not rejected.
func parseDateRange(c *gin.Context) *domain.DateRange {
	startRaw := strings.TrimSpace(c.Query("start"))
	endRaw := strings.TrimSpace(c.Query("end"))
	if startRaw == "" || endRaw == "" {
		return nil
	}

	start, ok := parseTime(startRaw)
	if !ok {
		return nil
	}
	end, ok := parseTime(endRaw)
	if !ok {
		return nil
	}

	window := domain.DateRange{Start: start, End: end}.Normalize()
	return &window
}

func parseTime(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (h *InventoryHandler) parseFilter(c *gin.Context) domain.ProductFilter {
	filter := domain.ProductFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if stockLevel := strings.TrimSpace(c.Query("stock_level")); stockLevel != "" {
		filter.StockLevel = strings.ToLower(stockLevel)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = category
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = search
	}
	if sortField := strings.TrimSpace(c.Query("sort_field")); sortField != "" {
		filter.SortField = strings.ToLower(sortField)
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.Query("sort_direction")))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	filter.SortDir = sortDir

	return filter
}

func (h *InventoryHandler) GetOverview(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	window := parseDateRange(c)

	overview, err := h.service.GetOverview(c.Request.Context(), orgID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch overview", "details": err.Error()})
		return
	}

	// nil means no snapshot (or no organization): uniform empty state.
	c.JSON(http.StatusOK, gin.H{"overview": overview})
}

func (h *InventoryHandler) GetProducts(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	window := parseDateRange(c)
	filter := h.parseFilter(c)

	page, err := h.service.GetProducts(c.Request.Context(), orgID, window, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}
	if page == nil {
		page = &domain.PagedProducts{Products: []domain.ProductSummaryRow{}, Page: filter.Page, PageSize: filter.PageSize}
	}

	c.JSON(http.StatusOK, page)
}

func (h *InventoryHandler) GetAlerts(c *gin.Context) {
	orgID := middleware.OrganizationID(c)

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	alerts, err := h.service.GetAlerts(c.Request.Context(), orgID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts", "details": err.Error()})
		return
	}

	// alerts stays null when no snapshot exists yet; an empty array means
	// a snapshot with nothing to report.
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *InventoryHandler) Refresh(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	if orgID == "" {
		c.JSON(http.StatusOK, gin.H{"refresh": nil})
		return
	}

	force := strings.EqualFold(c.Query("force"), "true")

	windowDays := 0
	if raw := strings.TrimSpace(c.Query("window_days")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			windowDays = parsed
		}
	}

	result, err := h.service.Refresh(c.Request.Context(), orgID, force, windowDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh snapshot", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"refresh": result})
}
