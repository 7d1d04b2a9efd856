package handler

import (
	"net/http"

	"dukaledger/internal/dto"
	"dukaledger/internal/service"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct{ svc service.CompanyService }

func NewCompanyHandler(svc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// Get godoc
// @Summary Company profile used on shift reports
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CompanyResponse
// @Router /v1/company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update the company profile
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateCompanyRequest true "Profile data"
// @Success 200 {object} dto.CompanyResponse
// @Router /v1/company [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
