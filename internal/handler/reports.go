package handler

import (
	"net/http"

	"dukaledger/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Stock godoc
// @Summary Current stock position per item, valued at batch cost
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StockSummaryResponse
// @Router /v1/reports/stock [get]
func (h *ReportsHandler) Stock(c *gin.Context) {
	resp, err := h.svc.StockSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Losses godoc
// @Summary Loss totals by category over a date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.LossSummaryResponse
// @Router /v1/reports/losses [get]
func (h *ReportsHandler) Losses(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.LossSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Shifts godoc
// @Summary Cash shift dashboard over a date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.ShiftDashboardResponse
// @Router /v1/reports/shifts [get]
func (h *ReportsHandler) Shifts(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.ShiftDashboard(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
