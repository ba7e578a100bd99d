package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"estate-api/dto"
	"estate-api/services"
)

// UserController maneja los endpoints HTTP de usuarios
type UserController struct {
	service services.UserService
}

// NewUserController crea una nueva instancia del controlador
func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// Login maneja POST /api/users/login
func (ctrl *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Create maneja POST /api/admin/users
func (ctrl *UserController) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := ctrl.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(user))
}

// List maneja GET /api/admin/users
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// Get maneja GET /api/admin/users/:id
func (ctrl *UserController) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := ctrl.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// Update maneja PUT /api/admin/users/:id
func (ctrl *UserController) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := ctrl.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// Delete maneja DELETE /api/admin/users/:id
func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidation, "invalid user id"))
		return 0, false
	}
	return uint(id), true
}
