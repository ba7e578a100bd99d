package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-api/dto"
	"estate-api/middleware"
	"estate-api/services"
)

// PropertyController maneja los endpoints de una propiedad
type PropertyController struct {
	service services.PropertyService
}

// NewPropertyController crea una nueva instancia del controlador
func NewPropertyController(service services.PropertyService) *PropertyController {
	return &PropertyController{service: service}
}

// Get maneja GET /api/properties/:id
func (ctrl *PropertyController) Get(c *gin.Context) {
	property, err := ctrl.service.GetProperty(c.Request.Context(), c.Param("id"), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(property))
}

// Create maneja POST /api/admin/properties
func (ctrl *PropertyController) Create(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	property, err := ctrl.service.CreateProperty(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(property))
}

// Update maneja PUT /api/admin/properties/:id
func (ctrl *PropertyController) Update(c *gin.Context) {
	var req dto.PropertyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	property, err := ctrl.service.UpdateProperty(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(property))
}

// Delete maneja DELETE /api/admin/properties/:id
func (ctrl *PropertyController) Delete(c *gin.Context) {
	if err := ctrl.service.DeleteProperty(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
