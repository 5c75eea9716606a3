package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biosys/internal/calendar"
	"biosys/internal/domain"
)

// @Summary Agendar una cita
// @Security BearerAuth
// @Tags citas
// @Accept json
// @Produce json
// @Param input body domain.CreateCitaInput true "Datos de la cita"
// @Success 201 {object} response
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/citas [post]
func (h *Handler) createCita(c *gin.Context) {
	var input domain.CreateCitaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "datos de la cita inválidos")
		return
	}

	cita, err := h.services.Citas.Crear(c.Request.Context(), getUserID(c), esAdmin(c), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusCreated, "cita agendada correctamente", cita)
}

// @Summary Listar citas
// @Description Los usuarios ven solo sus citas; los administradores, todas. Admite filtros por fecha, estado y tipo.
// @Security BearerAuth
// @Tags citas
// @Produce json
// @Param fecha query string false "Fecha (YYYY-MM-DD)"
// @Param estado query string false "Estado de la cita"
// @Param tipo query string false "Tipo de cita"
// @Success 200 {object} response
// @Router /api/citas [get]
func (h *Handler) listCitas(c *gin.Context) {
	var filter domain.CitaFilter

	if fechaStr := c.Query("fecha"); fechaStr != "" {
		fecha, err := calendar.NormalizarFecha(fechaStr)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "fecha inválida")
			return
		}
		filter.Fecha = &fecha
	}
	filter.Estado = domain.EstadoCita(c.Query("estado"))
	filter.Tipo = domain.TipoCita(c.Query("tipo"))

	citas, err := h.services.Citas.Listar(c.Request.Context(), getUserID(c), esAdmin(c), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", citas)
}

// @Summary Consultar los horarios disponibles de una fecha
// @Security BearerAuth
// @Tags citas
// @Produce json
// @Param fecha path string true "Fecha (YYYY-MM-DD)"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/citas/horarios-disponibles/{fecha} [get]
func (h *Handler) horariosDisponibles(c *gin.Context) {
	horarios, err := h.services.Citas.HorariosDisponibles(c.Request.Context(), c.Param("fecha"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", gin.H{
		"fecha":               c.Param("fecha"),
		"horariosDisponibles": horarios,
		"totalDisponibles":    len(horarios),
	})
}

// @Summary Obtener una cita
// @Security BearerAuth
// @Tags citas
// @Produce json
// @Param id path int true "ID de la cita"
// @Success 200 {object} response
// @Failure 404 {object} errorResponse
// @Router /api/citas/{id} [get]
func (h *Handler) getCita(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cita, err := h.services.Citas.Obtener(c.Request.Context(), getUserID(c), esAdmin(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", cita)
}

// @Summary Modificar una cita
// @Description Los usuarios solo pueden modificar citas pendientes; el cambio de estado está reservado a administradores.
// @Security BearerAuth
// @Tags citas
// @Accept json
// @Produce json
// @Param id path int true "ID de la cita"
// @Param input body domain.UpdateCitaInput true "Campos a actualizar"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/citas/{id} [put]
func (h *Handler) updateCita(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input domain.UpdateCitaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "datos de la cita inválidos")
		return
	}

	cita, err := h.services.Citas.Actualizar(c.Request.Context(), getUserID(c), esAdmin(c), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "cita actualizada", cita)
}

// @Summary Cancelar una cita
// @Description Marca la cita como cancelada. Una cita completada no puede cancelarse.
// @Security BearerAuth
// @Tags citas
// @Produce json
// @Param id path int true "ID de la cita"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/citas/{id} [delete]
func (h *Handler) cancelarCita(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cita, err := h.services.Citas.Cancelar(c.Request.Context(), getUserID(c), esAdmin(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "cita cancelada", cita)
}
