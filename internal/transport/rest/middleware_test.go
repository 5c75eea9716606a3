package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biosys/config"
	"biosys/internal/domain"
	"biosys/internal/service"
)

type fakeAuth struct {
	service.Auth
	userID int64
	role   domain.UserRole
}

func (f *fakeAuth) ParseToken(token string) (int64, domain.UserRole, error) {
	if token != "valido" {
		return 0, "", domain.ErrNoAutorizado
	}
	return f.userID, f.role, nil
}

func newTestHandler(auth service.Auth) *Handler {
	return NewHandler(
		&service.Services{Auth: auth},
		zap.NewNop(),
		&config.Config{Environment: "test"},
	)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandler(&fakeAuth{userID: 7, role: domain.RoleUser})

	router := gin.New()
	router.GET("/protegido", h.authMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": getUserID(c)})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"sin encabezado", "", http.StatusUnauthorized},
		{"formato inválido", "Token abc", http.StatusUnauthorized},
		{"bearer vacío", "Bearer ", http.StatusUnauthorized},
		{"token inválido", "Bearer basura", http.StatusForbidden},
		{"token válido", "Bearer valido", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
			if tt.header != "" {
				req.Header.Set(authorizationHeader, tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, se esperaba %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handlerOK := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("usuario común", func(t *testing.T) {
		h := newTestHandler(&fakeAuth{userID: 7, role: domain.RoleUser})
		router := gin.New()
		router.GET("/solo-admin", h.authMiddleware(), h.adminMiddleware(), handlerOK)

		req := httptest.NewRequest(http.MethodGet, "/solo-admin", nil)
		req.Header.Set(authorizationHeader, "Bearer valido")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, se esperaba 403", w.Code)
		}
	})

	t.Run("administrador", func(t *testing.T) {
		h := newTestHandler(&fakeAuth{userID: 1, role: domain.RoleAdmin})
		router := gin.New()
		router.GET("/solo-admin", h.authMiddleware(), h.adminMiddleware(), handlerOK)

		req := httptest.NewRequest(http.MethodGet, "/solo-admin", nil)
		req.Header.Set(authorizationHeader, "Bearer valido")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, se esperaba 200", w.Code)
		}
	})
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandler(nil)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{domain.ErrNoEncontrada, http.StatusNotFound},
		{domain.ErrMascotaNoEncontrada, http.StatusNotFound},
		{domain.ErrHorarioOcupado, http.StatusConflict},
		{domain.ErrFechaInvalida, http.StatusBadRequest},
		{domain.ErrHoraInvalida, http.StatusBadRequest},
		{domain.ErrCitaCompletada, http.StatusBadRequest},
		{domain.ErrSoloPendientes, http.StatusBadRequest},
		{domain.ErrMotivoRequerido, http.StatusBadRequest},
		{domain.ErrNoAutorizado, http.StatusForbidden},
		{domain.ErrSesionExpirada, http.StatusUnauthorized},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		h.handleError(c, tt.err)

		if w.Code != tt.wantStatus {
			t.Errorf("%v: status = %d, se esperaba %d", tt.err, w.Code, tt.wantStatus)
		}
	}
}
