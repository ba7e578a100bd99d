package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-api/dto"
	"estate-api/middleware"
	"estate-api/query"
	"estate-api/services"
)

// AgentController maneja los endpoints del directorio de agentes
type AgentController struct {
	service services.AgentService
}

// NewAgentController crea una nueva instancia del controlador
func NewAgentController(service services.AgentService) *AgentController {
	return &AgentController{service: service}
}

// List maneja GET /api/agents
func (ctrl *AgentController) List(c *gin.Context) {
	result, err := ctrl.service.ListAgents(c.Request.Context(), query.FromValues(c.Request.URL.Query()), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(result))
}

// Get maneja GET /api/agents/:id
func (ctrl *AgentController) Get(c *gin.Context) {
	agent, err := ctrl.service.GetAgent(c.Request.Context(), c.Param("id"), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(agent))
}

// Properties maneja GET /api/agents/:id/properties
func (ctrl *AgentController) Properties(c *gin.Context) {
	result, err := ctrl.service.AgentProperties(c.Request.Context(), c.Param("id"), query.FromValues(c.Request.URL.Query()), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(result))
}
