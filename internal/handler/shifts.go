package handler

import (
	"context"
	"net/http"
	"strconv"

	"dukaledger/internal/apierror"
	"dukaledger/internal/dto"
	"dukaledger/internal/middleware"
	"dukaledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShiftsHandler struct{ svc service.ShiftService }

func NewShiftsHandler(svc service.ShiftService) *ShiftsHandler {
	return &ShiftsHandler{svc: svc}
}

// Open godoc
// @Summary Open a cash shift for a date and shift type
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenShiftRequest true "Shift data"
// @Success 201 {object} dto.ShiftResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts [post]
func (h *ShiftsHandler) Open(c *gin.Context) {
	var req dto.OpenShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var openedBy uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		openedBy, _ = uuid.Parse(claims.UserID)
	}
	resp, err := h.svc.Open(c.Request.Context(), req, openedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordSale godoc
// @Summary Add a cash sale amount to an open shift
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Param body body dto.ShiftAmountRequest true "Amount"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/{id}/sales [post]
func (h *ShiftsHandler) RecordSale(c *gin.Context) {
	h.recordAmount(c, h.svc.RecordSale)
}

// RecordExpense godoc
// @Summary Add an expense amount to an open shift
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Param body body dto.ShiftAmountRequest true "Amount"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/{id}/expenses [post]
func (h *ShiftsHandler) RecordExpense(c *gin.Context) {
	h.recordAmount(c, h.svc.RecordExpense)
}

// RecordVoucher godoc
// @Summary Add a voucher (non-cash sale) amount to an open shift
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Param body body dto.ShiftAmountRequest true "Amount"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/{id}/vouchers [post]
func (h *ShiftsHandler) RecordVoucher(c *gin.Context) {
	h.recordAmount(c, h.svc.RecordVoucher)
}

func (h *ShiftsHandler) recordAmount(c *gin.Context, post func(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid shift id"))
		return
	}
	var req dto.ShiftAmountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := post(c.Request.Context(), id, req.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Close godoc
// @Summary Close a shift with the counted cash and compute the variance
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Param body body dto.CloseShiftRequest true "Closing cash"
// @Success 200 {object} dto.ShiftResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/{id}/close [post]
func (h *ShiftsHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid shift id"))
		return
	}
	var req dto.CloseShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var closedBy uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		closedBy, _ = uuid.Parse(claims.UserID)
	}
	resp, err := h.svc.Close(c.Request.Context(), id, req.ClosingCash, closedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch a single shift
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Success 200 {object} dto.ShiftResponse
// @Router /v1/shifts/{id} [get]
func (h *ShiftsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid shift id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Paginated shift listing over a date range
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.ShiftListResponse
// @Router /v1/shifts [get]
func (h *ShiftsHandler) List(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.svc.List(c.Request.Context(), from, to, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
