package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"estate-api/dto"
	"estate-api/query"
	"estate-api/services"
)

// respondError traduce los errores del servicio a un status y una respuesta de
// error. Los errores del store se loguean y nunca se devuelven al cliente.
func respondError(c *gin.Context, err error) {
	var verr *query.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidation, verr.Error()))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeNotFound, "resource not found"))
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(dto.ErrorCodeConflict, err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "invalid credentials"))
	default:
		_ = c.Error(err)
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternal, "internal server error"))
	}
}

// respondBindError responde un body que no se pudo decodificar o validar
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidation, err.Error()))
}
