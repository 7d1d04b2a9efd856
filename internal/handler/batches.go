package handler

import (
	"net/http"

	"dukaledger/internal/apierror"
	"dukaledger/internal/dto"
	"dukaledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BatchesHandler struct{ svc service.BatchService }

func NewBatchesHandler(svc service.BatchService) *BatchesHandler {
	return &BatchesHandler{svc: svc}
}

// Create godoc
// @Summary Record a purchased stock batch
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateBatchRequest true "Batch intake data"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/batches [post]
func (h *BatchesHandler) Create(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Get one batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/batches/{id} [get]
func (h *BatchesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAvailable godoc
// @Summary List an item's available batches in FIFO order
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {array} dto.BatchResponse
// @Router /v1/items/{id}/batches [get]
func (h *BatchesHandler) ListAvailable(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}
	resp, err := h.svc.ListAvailable(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deplete godoc
// @Summary Deplete quantity from a specific batch
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Batch ID"
// @Param body body dto.DepleteBatchRequest true "Quantity"
// @Success 200 {object} dto.DepletionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/batches/{id}/deplete [post]
func (h *BatchesHandler) Deplete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.DepleteBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Deplete(c.Request.Context(), id, req.Qty, c.Query("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DepleteFIFO godoc
// @Summary Deplete an item FIFO across its batches (POS sale path)
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.DepleteForSaleRequest true "Item and quantity"
// @Success 200 {object} dto.FIFODepletionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/batches/deplete [post]
func (h *BatchesHandler) DepleteFIFO(c *gin.Context) {
	var req dto.DepleteForSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.DepleteFIFO(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary Apply a bounded manual correction to a batch
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Batch ID"
// @Param body body dto.AdjustBatchRequest true "Signed delta and reason"
// @Success 200 {object} dto.BatchResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/batches/{id}/adjust [patch]
func (h *BatchesHandler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AdjustBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
