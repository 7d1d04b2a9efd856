package handler

import (
	"net/http"

	"dukaledger/internal/dto"
	"dukaledger/internal/middleware"
	"dukaledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LossesHandler struct{ svc service.LossService }

func NewLossesHandler(svc service.LossService) *LossesHandler {
	return &LossesHandler{svc: svc}
}

// Record godoc
// @Summary Record a weight/quantity loss against a batch
// @Tags losses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecordLossRequest true "Loss data"
// @Success 201 {object} dto.LossResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/losses [post]
func (h *LossesHandler) Record(c *gin.Context) {
	var req dto.RecordLossRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var recordedBy uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		recordedBy, _ = uuid.Parse(claims.UserID)
	}

	resp, err := h.svc.RecordLoss(c.Request.Context(), req, recordedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CategoryTotals godoc
// @Summary Summed loss quantities per category over a range
// @Tags losses
// @Produce json
// @Security BearerAuth
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.CategoryTotalsResponse
// @Router /v1/losses/categories [get]
func (h *LossesHandler) CategoryTotals(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.CategoryTotals(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
