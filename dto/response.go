package dto

import "estate-api/query"

// APIResponse es el sobre de todas las respuestas JSON
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PageMeta   `json:"meta,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError describe un request fallido
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageMeta es el bloque de paginación de las respuestas de listados
type PageMeta struct {
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	HasMore     bool  `json:"hasMore"`
	Limit       int   `json:"limit"`
}

// Códigos de error
const (
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeInvalidRequest = "INVALID_REQUEST"
	ErrorCodeUnauthorized   = "UNAUTHORIZED"
	ErrorCodeForbidden      = "FORBIDDEN"
	ErrorCodeNotFound       = "NOT_FOUND"
	ErrorCodeConflict       = "CONFLICT"
	ErrorCodeRateLimited    = "RATE_LIMITED"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)

// NewSuccessResponse envuelve data en una respuesta exitosa
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{Success: true, Data: data}
}

// NewListResponse envuelve una página de un listado
func NewListResponse[T any](result query.Result[T]) *APIResponse {
	return &APIResponse{
		Success: true,
		Data:    result.Rows,
		Meta: &PageMeta{
			TotalItems:  result.TotalCount,
			CurrentPage: result.Page,
			TotalPages:  result.TotalPages,
			HasMore:     result.HasMore,
			Limit:       result.Limit,
		},
	}
}

// NewErrorResponse arma una respuesta de error
func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{Success: false, Error: &APIError{Code: code, Message: message}}
}
