package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biosys/internal/domain"
)

// @Summary Registrar un nuevo usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param input body domain.RegisterUserInput true "Datos del usuario"
// @Success 201 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input domain.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "datos de registro inválidos")
		return
	}

	id, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusCreated, "usuario registrado correctamente", gin.H{"id": id})
}

// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param input body domain.LoginInput true "Credenciales"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input domain.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "credenciales inválidas")
		return
	}

	user, tokens, err := h.services.Auth.Login(c.Request.Context(), input, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", gin.H{
		"usuario": user,
		"tokens":  tokens,
	})
}

type refreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// @Summary Renovar los tokens de sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param input body refreshInput true "Token de actualización"
// @Success 200 {object} response
// @Failure 401 {object} errorResponse
// @Router /api/auth/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "token de actualización requerido")
		return
	}

	tokens, err := h.services.Auth.Refresh(c.Request.Context(), input.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", tokens)
}

// @Summary Cerrar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param input body refreshInput true "Token de actualización"
// @Success 200 {object} response
// @Router /api/auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "token de actualización requerido")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "sesión cerrada", nil)
}
