package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biosys/internal/domain"
)

type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, response{
		Success: statusCode < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{
		Success: false,
		Message: message,
	})
}

// handleError traduce los errores de dominio a códigos HTTP. Cualquier
// error no reconocido se registra y responde como error interno sin
// exponer detalles al cliente.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoEncontrada),
		errors.Is(err, domain.ErrUsuarioNoEncontrado),
		errors.Is(err, domain.ErrMascotaNoEncontrada):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrHorarioOcupado):
		newErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrFechaInvalida),
		errors.Is(err, domain.ErrHoraInvalida),
		errors.Is(err, domain.ErrEstadoInvalido),
		errors.Is(err, domain.ErrMotivoRequerido),
		errors.Is(err, domain.ErrCitaCompletada),
		errors.Is(err, domain.ErrSoloPendientes),
		errors.Is(err, domain.ErrEmailEnUso),
		errors.Is(err, domain.ErrCredenciales):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSesionExpirada):
		newErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNoAutorizado):
		newErrorResponse(c, http.StatusForbidden, err.Error())
	default:
		h.logger.Error("error interno", zap.Error(err), zap.String("path", c.FullPath()))
		newErrorResponse(c, http.StatusInternalServerError, "error interno del servidor")
	}
}
