package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biosys/internal/domain"
)

// @Summary Obtener el perfil del usuario autenticado
// @Security BearerAuth
// @Tags usuarios
// @Produce json
// @Success 200 {object} response
// @Failure 401 {object} errorResponse
// @Router /api/auth/me [get]
func (h *Handler) getMe(c *gin.Context) {
	user, err := h.services.Users.GetByID(c.Request.Context(), getUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", user)
}

// @Summary Actualizar el perfil del usuario autenticado
// @Security BearerAuth
// @Tags usuarios
// @Accept json
// @Produce json
// @Param input body domain.UpdateUserInput true "Campos a actualizar"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/usuarios/perfil [put]
func (h *Handler) updatePerfil(c *gin.Context) {
	var input domain.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "datos de perfil inválidos")
		return
	}

	user, err := h.services.Users.Update(c.Request.Context(), getUserID(c), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "perfil actualizado", user)
}

// @Summary Listar todos los usuarios
// @Security BearerAuth
// @Tags admin
// @Produce json
// @Success 200 {object} response
// @Failure 403 {object} errorResponse
// @Router /api/usuarios [get]
func (h *Handler) listUsuarios(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", users)
}
