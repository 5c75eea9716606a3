package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"biosys/config"
	"biosys/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	cfg      *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		cfg:      cfg,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	if h.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refresh)
			auth.POST("/logout", h.logout)
			auth.GET("/me", h.authMiddleware(), h.getMe)
		}

		usuarios := api.Group("/usuarios", h.authMiddleware())
		{
			usuarios.GET("", h.adminMiddleware(), h.listUsuarios)
			usuarios.PUT("/perfil", h.updatePerfil)
		}

		mascotas := api.Group("/mascotas", h.authMiddleware())
		{
			mascotas.POST("", h.createMascota)
			mascotas.GET("", h.listMascotas)
			mascotas.GET("/:id", h.getMascota)
			mascotas.PUT("/:id", h.updateMascota)
			mascotas.DELETE("/:id", h.deleteMascota)
			mascotas.POST("/:id/foto", h.subirFotoMascota)
			mascotas.POST("/:id/vacunas", h.addVacuna)
			mascotas.GET("/:id/vacunas", h.listVacunas)
			mascotas.POST("/:id/operaciones", h.addOperacion)
			mascotas.GET("/:id/operaciones", h.listOperaciones)
		}

		citas := api.Group("/citas", h.authMiddleware())
		{
			citas.POST("", h.createCita)
			citas.GET("", h.listCitas)
			citas.GET("/horarios-disponibles/:fecha", h.horariosDisponibles)
			citas.GET("/:id", h.getCita)
			citas.PUT("/:id", h.updateCita)
			citas.DELETE("/:id", h.cancelarCita)
			citas.PUT("/:id/estado", h.adminMiddleware(), h.cambiarEstadoCita)
		}

		admin := api.Group("/admin", h.authMiddleware(), h.adminMiddleware())
		{
			admin.GET("/dashboard", h.dashboard)

			adminCitas := admin.Group("/citas")
			{
				adminCitas.GET("", h.listCitas)
				adminCitas.DELETE("/:id", h.deleteCita)
				adminCitas.GET("/estadisticas", h.estadisticasCitas)
				adminCitas.POST("/mantenimiento", h.ejecutarMantenimiento)
				adminCitas.GET("/estadisticas-mantenimiento", h.estadisticasMantenimiento)
				adminCitas.GET("/config-automatico", h.configMantenimiento)
				adminCitas.PUT("/config-automatico", h.actualizarConfigMantenimiento)
				adminCitas.POST("/toggle-automatico", h.toggleMantenimiento)
			}
		}
	}

	return router
}

// @Summary Estado del servicio
// @Tags salud
// @Produce json
// @Success 200 {object} response
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	newResponse(c, http.StatusOK, "", gin.H{
		"status":  "ok",
		"name":    h.cfg.Name,
		"version": h.cfg.Version,
	})
}
