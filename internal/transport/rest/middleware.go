package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biosys/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	userIDCtx           = "userID"
	userRoleCtx         = "userRole"
)

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}

		switch {
		case status >= http.StatusInternalServerError:
			h.logger.Error("solicitud fallida", fields...)
		case status >= http.StatusBadRequest:
			h.logger.Warn("solicitud rechazada", fields...)
		default:
			h.logger.Info("solicitud procesada", fields...)
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			newErrorResponse(c, http.StatusUnauthorized, "falta el encabezado de autorización")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			newErrorResponse(c, http.StatusUnauthorized, "encabezado de autorización inválido")
			return
		}

		userID, role, err := h.services.Auth.ParseToken(parts[1])
		if err != nil {
			newErrorResponse(c, http.StatusForbidden, "token inválido o expirado")
			return
		}

		c.Set(userIDCtx, userID)
		c.Set(userRoleCtx, string(role))
		c.Next()
	}
}

func (h *Handler) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !esAdmin(c) {
			newErrorResponse(c, http.StatusForbidden, "se requieren permisos de administrador")
			return
		}
		c.Next()
	}
}

func getUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDCtx)
}

func esAdmin(c *gin.Context) bool {
	return c.GetString(userRoleCtx) == string(domain.RoleAdmin)
}
