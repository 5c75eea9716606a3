package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type estadoInput struct {
	Estado string `json:"estado" binding:"required"`
}

// @Summary Cambiar el estado de una cita
// @Security BearerAuth
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID de la cita"
// @Param input body estadoInput true "Nuevo estado"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/citas/{id}/estado [put]
func (h *Handler) cambiarEstadoCita(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input estadoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "el estado es obligatorio")
		return
	}

	cita, err := h.services.Citas.CambiarEstado(c.Request.Context(), id, input.Estado)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "estado actualizado", cita)
}

// @Summary Eliminar una cita definitivamente
// @Security BearerAuth
// @Tags admin
// @Produce json
// @Param id path int true "ID de la cita"
// @Success 200 {object} response
// @Failure 404 {object} errorResponse
// @Router /api/admin/citas/{id} [delete]
func (h *Handler) deleteCita(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Citas.Eliminar(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "cita eliminada", nil)
}

// @Summary Panel de administración
// @Security BearerAuth
// @Tags admin
// @Produce json
// @Success 200 {object} response
// @Router /api/admin/dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.services.Admin.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", stats)
}

// @Summary Estadísticas de citas del mes en curso
// @Description Conteo de citas por día y estado para el mes actual.
// @Security BearerAuth
// @Tags admin
// @Produce json
// @Success 200 {object} response
// @Router /api/admin/citas/estadisticas [get]
func (h *Handler) estadisticasCitas(c *gin.Context) {
	stats, err := h.services.Citas.EstadisticasMes(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", stats)
}

// @Summary Ejecutar una pasada de mantenimiento de citas
// @Security BearerAuth
// @Tags admin
// @Produce json
// @Success 200 {object} response
// @Router /api/admin/citas/mantenimiento [post]
func (h *Handler) ejecutarMantenimiento(c *gin.Context) {
	resultado := h.services.Mantenimiento.Ejecutar(c.Request.Context())
	newResponse(c, http.StatusOK, "mantenimiento ejecutado", resultado)
}

// @Summary Estadísticas del mantenimiento de citas
// @Security BearerAuth
// @Tags admin
// @Produce json
// @Success 200 {object} response
// @Router /api/admin/citas/estadisticas-mantenimiento [get]
func (h *Handler) estadisticasMantenimiento(c *gin.Context) {
	stats, err := h.services.Mantenimiento.Estadisticas(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", stats)
}

// @Summary Configuración del mantenimiento automático
// @Security BearerAuth
// @Tags admin
// @Produce json
// @Success 200 {object} response
// @Router /api/admin/citas/config-automatico [get]
func (h *Handler) configMantenimiento(c *gin.Context) {
	newResponse(c, http.StatusOK, "", h.services.Mantenimiento.Configuracion())
}

type configMantenimientoInput struct {
	IntervaloMinutos int `json:"intervaloMinutos" binding:"required,min=1"`
}

// @Summary Ajustar el intervalo del mantenimiento automático
// @Security BearerAuth
// @Tags admin
// @Accept json
// @Produce json
// @Param input body configMantenimientoInput true "Intervalo en minutos"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/admin/citas/config-automatico [put]
func (h *Handler) actualizarConfigMantenimiento(c *gin.Context) {
	var input configMantenimientoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "el intervalo en minutos es obligatorio")
		return
	}

	if err := h.services.Mantenimiento.SetIntervalo(time.Duration(input.IntervaloMinutos) * time.Minute); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	newResponse(c, http.StatusOK, "intervalo actualizado", h.services.Mantenimiento.Configuracion())
}

type toggleInput struct {
	Accion string `json:"accion" binding:"required,oneof=iniciar detener"`
}

// @Summary Iniciar o detener el mantenimiento automático
// @Security BearerAuth
// @Tags admin
// @Accept json
// @Produce json
// @Param input body toggleInput true "Acción: iniciar o detener"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/admin/citas/toggle-automatico [post]
func (h *Handler) toggleMantenimiento(c *gin.Context) {
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "la acción debe ser iniciar o detener")
		return
	}

	if input.Accion == "iniciar" {
		h.services.Mantenimiento.Iniciar()
	} else {
		h.services.Mantenimiento.Detener()
	}

	newResponse(c, http.StatusOK, "configuración actualizada", h.services.Mantenimiento.Configuracion())
}
