package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"biosys/internal/domain"
	"biosys/internal/repository"
)

const (
	intervaloMantenimiento = 2 * time.Hour
	retrasoInicial         = 30 * time.Second
	diasRetencion          = 3
	intervaloMinimo        = time.Minute
)

// MantenimientoService ejecuta periódicamente el ciclo de mantenimiento
// de citas: marca como completadas las vencidas y purga las completadas
// o canceladas con más días de retención de los permitidos.
type MantenimientoService struct {
	citas  repository.Citas
	logger *zap.Logger

	mu               sync.Mutex
	activo           bool
	ejecutando       bool
	intervalo        time.Duration
	ultimaEjecucion  *time.Time
	proximaEjecucion *time.Time
	stop             chan struct{}
	done             chan struct{}

	now func() time.Time
}

func NewMantenimientoService(citas repository.Citas, logger *zap.Logger) *MantenimientoService {
	return &MantenimientoService{
		citas:     citas,
		logger:    logger,
		intervalo: intervaloMantenimiento,
		now:       time.Now,
	}
}

// Iniciar arranca el ciclo periódico. Una primera pasada se ejecuta a
// los pocos segundos para ponerse al día tras el arranque del servidor.
// Llamadas repetidas con el ciclo ya activo no tienen efecto.
func (s *MantenimientoService) Iniciar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activo {
		return
	}

	s.activo = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	proxima := s.now().Add(retrasoInicial)
	s.proximaEjecucion = &proxima

	go s.run(s.stop, s.done, s.intervalo)

	s.logger.Info("mantenimiento automático iniciado",
		zap.Duration("intervalo", s.intervalo),
		zap.Duration("retraso_inicial", retrasoInicial),
	)
}

func (s *MantenimientoService) run(stop, done chan struct{}, intervalo time.Duration) {
	defer close(done)

	inicial := time.NewTimer(retrasoInicial)
	defer inicial.Stop()

	select {
	case <-inicial.C:
		s.ejecutarCiclo()
	case <-stop:
		return
	}

	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.ejecutarCiclo()
		case <-stop:
			return
		}
	}
}

func (s *MantenimientoService) ejecutarCiclo() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s.Ejecutar(ctx)

	s.mu.Lock()
	if s.activo {
		proxima := s.now().Add(s.intervalo)
		s.proximaEjecucion = &proxima
	}
	s.mu.Unlock()
}

// Detener apaga el ciclo periódico y espera a que la goroutine termine.
// Es seguro llamarlo con el ciclo ya detenido.
func (s *MantenimientoService) Detener() {
	s.mu.Lock()
	if !s.activo {
		s.mu.Unlock()
		return
	}
	s.activo = false
	s.proximaEjecucion = nil
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done

	s.logger.Info("mantenimiento automático detenido")
}

func (s *MantenimientoService) Activo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activo
}

// Ejecutar corre una pasada completa de mantenimiento. Si ya hay una
// pasada en curso, la llamada se descarta y devuelve un resultado vacío
// exitoso. Los errores de base de datos se registran y se reflejan en
// el campo Success sin propagarse.
func (s *MantenimientoService) Ejecutar(ctx context.Context) domain.ResultadoMantenimiento {
	s.mu.Lock()
	if s.ejecutando {
		s.mu.Unlock()
		s.logger.Warn("pasada de mantenimiento descartada: ya hay una en curso")
		return domain.ResultadoMantenimiento{Success: true, Timestamp: s.now()}
	}
	s.ejecutando = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.ejecutando = false
		ahora := s.now()
		s.ultimaEjecucion = &ahora
		s.mu.Unlock()
	}()

	ahora := s.now()
	hoy := diaDe(ahora)
	horaActual := ahora.Format("15:04")

	resultado := domain.ResultadoMantenimiento{Success: true, Timestamp: ahora}

	actualizadas, err := s.citas.ActualizarVencidas(ctx, hoy, horaActual)
	if err != nil {
		s.logger.Error("error al actualizar las citas vencidas", zap.Error(err))
		resultado.Success = false
	} else {
		resultado.CitasActualizadas = actualizadas
	}

	eliminadas, err := s.citas.EliminarAntiguas(ctx, s.limiteRetencion(ahora))
	if err != nil {
		s.logger.Error("error al eliminar las citas antiguas", zap.Error(err))
		resultado.Success = false
	} else {
		resultado.CitasEliminadas = eliminadas
	}

	if resultado.CitasActualizadas > 0 || resultado.CitasEliminadas > 0 {
		s.logger.Info("mantenimiento ejecutado",
			zap.Int64("actualizadas", resultado.CitasActualizadas),
			zap.Int64("eliminadas", resultado.CitasEliminadas),
		)
	}

	return resultado
}

// limiteRetencion devuelve el final del día de hace diasRetencion días:
// toda cita terminal con fecha hasta ese día inclusive es purgable.
func (s *MantenimientoService) limiteRetencion(ahora time.Time) time.Time {
	dia := diaDe(ahora.AddDate(0, 0, -diasRetencion))
	return dia.Add(24*time.Hour - time.Millisecond)
}

func diaDe(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *MantenimientoService) Estadisticas(ctx context.Context) (domain.EstadisticasMantenimiento, error) {
	ahora := s.now()

	porEstado, err := s.citas.ContarPorEstado(ctx)
	if err != nil {
		return domain.EstadisticasMantenimiento{}, fmt.Errorf("error al contar por estado: %w", err)
	}

	vencidas, err := s.citas.ContarVencidas(ctx, diaDe(ahora), ahora.Format("15:04"))
	if err != nil {
		return domain.EstadisticasMantenimiento{}, fmt.Errorf("error al contar las vencidas: %w", err)
	}

	elegibles, err := s.citas.ContarElegiblesEliminacion(ctx, s.limiteRetencion(ahora))
	if err != nil {
		return domain.EstadisticasMantenimiento{}, fmt.Errorf("error al contar las eliminables: %w", err)
	}

	total, err := s.citas.ContarTotal(ctx)
	if err != nil {
		return domain.EstadisticasMantenimiento{}, fmt.Errorf("error al contar el total: %w", err)
	}

	return domain.EstadisticasMantenimiento{
		PorEstado:            porEstado,
		CitasVencidas:        vencidas,
		ElegiblesEliminacion: elegibles,
		Total:                total,
		Timestamp:            ahora,
	}, nil
}

func (s *MantenimientoService) Configuracion() domain.ConfigMantenimiento {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ConfigMantenimiento{
		Activo:           s.activo,
		Intervalo:        s.intervalo,
		IntervaloHoras:   s.intervalo.Hours(),
		DiasRetencion:    diasRetencion,
		ProximaEjecucion: s.proximaEjecucion,
		UltimaEjecucion:  s.ultimaEjecucion,
	}
}

// SetIntervalo ajusta el intervalo del ciclo. Si el ciclo está activo
// se reinicia para que el nuevo intervalo surta efecto.
func (s *MantenimientoService) SetIntervalo(intervalo time.Duration) error {
	if intervalo < intervaloMinimo {
		return fmt.Errorf("el intervalo mínimo es %s", intervaloMinimo)
	}

	s.mu.Lock()
	s.intervalo = intervalo
	activo := s.activo
	s.mu.Unlock()

	if activo {
		s.Detener()
		s.Iniciar()
	}

	return nil
}
