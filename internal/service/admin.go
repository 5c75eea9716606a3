package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"biosys/internal/domain"
	"biosys/internal/repository"
)

type AdminService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewAdminService(repos *repository.Repositories, logger *zap.Logger) *AdminService {
	return &AdminService{repos: repos, logger: logger}
}

// Dashboard reúne los contadores globales que consume el panel de
// administración, incluyendo las citas agrupadas por estado y por mes
// durante los últimos seis meses.
func (s *AdminService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	totalUsuarios, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalMascotas, err := s.repos.Mascotas.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalCitas, err := s.repos.Citas.ContarTotal(ctx)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	hoy := diaDe(ahora)

	citasHoy, err := s.repos.Citas.ContarHoy(ctx, hoy)
	if err != nil {
		return nil, err
	}

	porEstado, err := s.repos.Citas.ContarPorEstado(ctx)
	if err != nil {
		return nil, err
	}

	inicio := diaDe(ahora.AddDate(0, -5, 0))
	inicio = time.Date(inicio.Year(), inicio.Month(), 1, 0, 0, 0, 0, inicio.Location())

	porMes, err := s.repos.Citas.EstadisticasMensuales(ctx, inicio, hoy)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalUsuarios:  totalUsuarios,
		TotalMascotas:  totalMascotas,
		TotalCitas:     totalCitas,
		CitasHoy:       citasHoy,
		CitasPorEstado: porEstado,
		CitasPorMes:    porMes,
	}, nil
}
