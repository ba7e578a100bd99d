package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-api/dto"
	"estate-api/services"
)

// LeadController maneja los endpoints de consultas
type LeadController struct {
	service services.LeadService
}

// NewLeadController crea una nueva instancia del controlador
func NewLeadController(service services.LeadService) *LeadController {
	return &LeadController{service: service}
}

// Submit maneja POST /api/leads
func (ctrl *LeadController) Submit(c *gin.Context) {
	var req dto.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lead, err := ctrl.service.SubmitLead(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(lead))
}

// List maneja GET /api/admin/leads
func (ctrl *LeadController) List(c *gin.Context) {
	result, err := ctrl.service.ListLeads(c.Request.Context(), c.Query("page"), c.Query("limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(result))
}
