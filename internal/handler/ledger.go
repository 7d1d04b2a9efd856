package handler

import (
	"net/http"
	"strconv"
	"time"

	"dukaledger/internal/apierror"
	"dukaledger/internal/dto"
	"dukaledger/internal/repository"
	"dukaledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LedgerHandler struct{ svc service.LedgerService }

func NewLedgerHandler(svc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// Append godoc
// @Summary Append a movement entry to the ledger
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AppendMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/ledger/movements [post]
func (h *LedgerHandler) Append(c *gin.Context) {
	var req dto.AppendMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Append(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Balance godoc
// @Summary Opening/closing balance for an item on a date
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param date query string false "YYYY-MM-DD (default today)"
// @Success 200 {object} dto.BalanceResponse
// @Router /v1/items/{id}/balance [get]
func (h *LedgerHandler) Balance(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}
	date := time.Now().UTC()
	if s := c.Query("date"); s != "" {
		if date, err = time.Parse("2006-01-02", s); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid date, want YYYY-MM-DD"))
			return
		}
	}
	resp, err := h.svc.ComputeBalance(c.Request.Context(), itemID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Aggregate godoc
// @Summary Per-date stock aggregate for an item over a range
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.LedgerReportResponse
// @Router /v1/items/{id}/ledger [get]
func (h *LedgerHandler) Aggregate(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.Aggregate(c.Request.Context(), itemID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Paginated raw movement listing
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param item_id query string false "Item ID"
// @Param type query string false "Movement type"
// @Success 200 {object} dto.MovementListResponse
// @Router /v1/ledger/movements [get]
func (h *LedgerHandler) List(c *gin.Context) {
	filter := repository.MovementFilter{Type: c.Query("type")}
	if s := c.Query("item_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid item_id"))
			return
		}
		filter.ItemID = &id
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parseRange reads mandatory from/to query dates. Writes the error response
// itself when invalid.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid from date, want YYYY-MM-DD"))
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid to date, want YYYY-MM-DD"))
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
