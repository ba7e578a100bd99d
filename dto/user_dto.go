package dto

import "estate-api/domain"

// CreateUserRequest representa el request para crear un usuario desde el admin
type CreateUserRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=50"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role" binding:"omitempty,oneof=admin agent"`
}

// LoginRequest representa el request para login; el usuario puede loguearse con
// username O email
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

// UpdateUserRequest representa el request para actualizar un usuario; todos los
// campos son opcionales
type UpdateUserRequest struct {
	Username string      `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Email    string      `json:"email,omitempty" binding:"omitempty,email"`
	Password string      `json:"password,omitempty" binding:"omitempty,min=8"`
	FullName string      `json:"full_name,omitempty"`
	Role     domain.Role `json:"role,omitempty" binding:"omitempty,oneof=admin agent"`
}

// LoginResponse devuelve el token JWT y los datos del usuario
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
