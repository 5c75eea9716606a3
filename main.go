package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"biosys/config"
	_ "biosys/docs"
	"biosys/internal/cache"
	"biosys/internal/repository"
	"biosys/internal/service"
	"biosys/internal/storage"
	"biosys/internal/transport/rest"
	"biosys/pkg/database"
	"biosys/pkg/logger"
)

// @title BioSys API
// @version 1.0
// @description API de la clínica veterinaria BioSys: usuarios, mascotas y agenda de citas.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	log, err := logger.NewLogger()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("error al cargar la configuración", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("error al conectar con la base de datos", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("error al ejecutar las migraciones", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		fileStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatal("error al inicializar el almacenamiento de archivos", zap.Error(err))
		}
		log.Info("almacenamiento de archivos habilitado", zap.String("bucket", cfg.S3.Bucket))
	} else {
		log.Warn("almacenamiento de archivos deshabilitado: falta S3_ENDPOINT")
	}

	var horariosCache cache.HorariosCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis, log)
		if err != nil {
			log.Fatal("error al conectar con redis", zap.Error(err))
		}
		defer redisCache.Close()
		horariosCache = redisCache
		log.Info("caché de horarios habilitada", zap.String("addr", cfg.Redis.Addr))
	} else {
		horariosCache = cache.NewNoop()
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Cache:       horariosCache,
	})

	services.Mantenimiento.Iniciar()
	defer services.Mantenimiento.Detener()

	handler := rest.NewHandler(services, log, cfg)

	server := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        handler.InitRoutes(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		log.Info("servidor iniciado", zap.String("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("error en el servidor HTTP", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("apagando el servidor")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("error al apagar el servidor", zap.Error(err))
	}

	log.Info("servidor detenido")
}
