package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-api/dto"
	"estate-api/middleware"
)

// Controllers agrupa los handlers que monta NewRouter
type Controllers struct {
	Search   *SearchController
	Property *PropertyController
	Agent    *AgentController
	Lead     *LeadController
	User     *UserController
	Health   *HealthController
}

// NewRouter arma el engine de gin con todas las rutas. limiter puede ser nil
// para desactivar el rate limiting.
func NewRouter(ctrls Controllers, tokens middleware.TokenValidator, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.OptionalAuth(tokens))
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeNotFound, "route not found"))
	})

	r.GET("/health", ctrls.Health.Health)

	api := r.Group("/api")
	{
		api.GET("/properties", ctrls.Search.Search)
		api.POST("/properties/search", ctrls.Search.SearchJSON)
		api.GET("/properties/:id", ctrls.Property.Get)

		api.GET("/agents", ctrls.Agent.List)
		api.GET("/agents/:id", ctrls.Agent.Get)
		api.GET("/agents/:id/properties", ctrls.Agent.Properties)

		api.POST("/leads", ctrls.Lead.Submit)
		api.POST("/users/login", ctrls.User.Login)
	}

	admin := api.Group("/admin", middleware.AuthMiddleware(tokens), middleware.AdminMiddleware())
	{
		admin.GET("/properties", ctrls.Search.AdminList)
		admin.POST("/properties", ctrls.Property.Create)
		admin.PUT("/properties/:id", ctrls.Property.Update)
		admin.DELETE("/properties/:id", ctrls.Property.Delete)

		admin.GET("/leads", ctrls.Lead.List)

		admin.GET("/users", ctrls.User.List)
		admin.POST("/users", ctrls.User.Create)
		admin.GET("/users/:id", ctrls.User.Get)
		admin.PUT("/users/:id", ctrls.User.Update)
		admin.DELETE("/users/:id", ctrls.User.Delete)
	}

	return r
}
