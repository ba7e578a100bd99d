package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-api/dto"
	"estate-api/middleware"
	"estate-api/query"
	"estate-api/services"
)

const maxSearchBody = 64 << 10

// SearchController maneja los endpoints de listados de propiedades
type SearchController struct {
	service services.SearchService
}

// NewSearchController crea una nueva instancia del controlador
func NewSearchController(service services.SearchService) *SearchController {
	return &SearchController{service: service}
}

// Search maneja GET /api/properties
func (ctrl *SearchController) Search(c *gin.Context) {
	ctrl.search(c, query.FromValues(c.Request.URL.Query()))
}

// SearchJSON maneja POST /api/properties/search con un objeto JSON en el body
func (ctrl *SearchController) SearchJSON(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSearchBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeInvalidRequest, "request body could not be read"))
		return
	}
	params, err := query.FromJSON(body)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.search(c, params)
}

func (ctrl *SearchController) search(c *gin.Context, params query.Params) {
	result, err := ctrl.service.SearchProperties(c.Request.Context(), params, middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(result))
}

// AdminList maneja GET /api/admin/properties
func (ctrl *SearchController) AdminList(c *gin.Context) {
	result, err := ctrl.service.AdminProperties(c.Request.Context(), query.FromValues(c.Request.URL.Query()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(result))
}
