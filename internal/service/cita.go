package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"biosys/internal/cache"
	"biosys/internal/calendar"
	"biosys/internal/domain"
	"biosys/internal/repository"
)

type CitaService struct {
	repo     repository.Citas
	mascotas repository.Mascotas
	cache    cache.HorariosCache
	logger   *zap.Logger

	now func() time.Time
}

func NewCitaService(repo repository.Citas, mascotas repository.Mascotas, horarios cache.HorariosCache, logger *zap.Logger) *CitaService {
	return &CitaService{
		repo:     repo,
		mascotas: mascotas,
		cache:    horarios,
		logger:   logger,
		now:      time.Now,
	}
}

// validarAgenda comprueba fecha y hora contra las reglas del calendario
// y devuelve la hora en su forma canónica HH:MM, que es la única que
// se persiste y la que respalda el índice único por (fecha, hora).
func (s *CitaService) validarAgenda(fecha time.Time, hora string) (string, error) {
	if !calendar.EsFechaValida(fecha, s.now()) {
		return "", domain.ErrFechaInvalida
	}
	horaCanonica, err := calendar.NormalizarHora(hora)
	if err != nil {
		return "", domain.ErrHoraInvalida
	}
	return horaCanonica, nil
}

func (s *CitaService) Crear(ctx context.Context, usuarioID int64, esAdmin bool, input domain.CreateCitaInput) (*domain.Cita, error) {
	if !domain.TipoCita(input.Tipo).Valido() {
		return nil, domain.ErrEstadoInvalido
	}
	if strings.TrimSpace(input.Motivo) == "" {
		return nil, domain.ErrMotivoRequerido
	}

	fecha, err := calendar.NormalizarFecha(input.Fecha)
	if err != nil {
		return nil, domain.ErrFechaInvalida
	}
	hora, err := s.validarAgenda(fecha, input.Hora)
	if err != nil {
		return nil, err
	}

	mascota, err := s.mascotas.GetByID(ctx, input.MascotaID)
	if err != nil {
		return nil, err
	}
	if !esAdmin && mascota.UsuarioID != usuarioID {
		return nil, domain.ErrNoAutorizado
	}

	cita := &domain.Cita{
		MascotaID: input.MascotaID,
		UsuarioID: mascota.UsuarioID,
		Tipo:      domain.TipoCita(input.Tipo),
		Fecha:     fecha,
		Hora:      hora,
		Motivo:    input.Motivo,
		Estado:    domain.EstadoPendiente,
		Notas:     input.Notas,
	}

	id, err := s.repo.Create(ctx, cita)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, fecha)

	s.logger.Info("cita agendada",
		zap.Int64("cita_id", id),
		zap.String("fecha", fecha.Format(calendar.FormatoFecha)),
		zap.String("hora", hora),
	)

	return s.repo.GetByID(ctx, id)
}

func (s *CitaService) Obtener(ctx context.Context, usuarioID int64, esAdmin bool, id int64) (*domain.Cita, error) {
	cita, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !esAdmin && cita.UsuarioID != usuarioID {
		return nil, domain.ErrNoAutorizado
	}
	return cita, nil
}

func (s *CitaService) Listar(ctx context.Context, usuarioID int64, esAdmin bool, filter domain.CitaFilter) ([]domain.Cita, error) {
	if !esAdmin {
		filter.UsuarioID = usuarioID
	}
	return s.repo.List(ctx, filter)
}

func (s *CitaService) Actualizar(ctx context.Context, usuarioID int64, esAdmin bool, id int64, input domain.UpdateCitaInput) (*domain.Cita, error) {
	cita, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !esAdmin && cita.UsuarioID != usuarioID {
		return nil, domain.ErrNoAutorizado
	}
	if !cita.PuedeModificar(esAdmin) {
		return nil, domain.ErrSoloPendientes
	}
	if input.Estado != nil && !esAdmin {
		return nil, domain.ErrNoAutorizado
	}

	fechaAnterior := cita.Fecha

	if input.MascotaID != nil {
		mascota, err := s.mascotas.GetByID(ctx, *input.MascotaID)
		if err != nil {
			return nil, err
		}
		if !esAdmin && mascota.UsuarioID != usuarioID {
			return nil, domain.ErrNoAutorizado
		}
		cita.MascotaID = mascota.ID
		cita.UsuarioID = mascota.UsuarioID
	}
	if input.Tipo != nil {
		if !domain.TipoCita(*input.Tipo).Valido() {
			return nil, domain.ErrEstadoInvalido
		}
		cita.Tipo = domain.TipoCita(*input.Tipo)
	}
	if input.Fecha != nil {
		fecha, err := calendar.NormalizarFecha(*input.Fecha)
		if err != nil {
			return nil, domain.ErrFechaInvalida
		}
		cita.Fecha = fecha
	}
	if input.Hora != nil {
		cita.Hora = *input.Hora
	}
	if input.Fecha != nil || input.Hora != nil {
		hora, err := s.validarAgenda(cita.Fecha, cita.Hora)
		if err != nil {
			return nil, err
		}
		cita.Hora = hora
	}
	if input.Motivo != nil {
		if strings.TrimSpace(*input.Motivo) == "" {
			return nil, domain.ErrMotivoRequerido
		}
		cita.Motivo = *input.Motivo
	}
	if input.Notas != nil {
		cita.Notas = *input.Notas
	}
	if input.Estado != nil {
		estado := domain.EstadoCita(*input.Estado)
		if !estado.Valido() {
			return nil, domain.ErrEstadoInvalido
		}
		cita.Estado = estado
	}

	if err := s.repo.Update(ctx, cita); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, fechaAnterior)
	if !cita.Fecha.Equal(fechaAnterior) {
		s.cache.Invalidate(ctx, cita.Fecha)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *CitaService) Cancelar(ctx context.Context, usuarioID int64, esAdmin bool, id int64) (*domain.Cita, error) {
	cita, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !esAdmin && cita.UsuarioID != usuarioID {
		return nil, domain.ErrNoAutorizado
	}
	if !cita.PuedeCancelar() {
		return nil, domain.ErrCitaCompletada
	}

	if err := s.repo.UpdateEstado(ctx, id, domain.EstadoCancelada); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cita.Fecha)

	s.logger.Info("cita cancelada", zap.Int64("cita_id", id))

	return s.repo.GetByID(ctx, id)
}

func (s *CitaService) CambiarEstado(ctx context.Context, id int64, estado string) (*domain.Cita, error) {
	nuevoEstado := domain.EstadoCita(estado)
	if !nuevoEstado.Valido() {
		return nil, domain.ErrEstadoInvalido
	}

	cita, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEstado(ctx, id, nuevoEstado); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cita.Fecha)

	return s.repo.GetByID(ctx, id)
}

func (s *CitaService) Eliminar(ctx context.Context, id int64) error {
	cita, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, cita.Fecha)

	return nil
}

func (s *CitaService) HorariosDisponibles(ctx context.Context, fechaStr string) ([]calendar.Horario, error) {
	fecha, err := calendar.NormalizarFecha(fechaStr)
	if err != nil {
		return nil, domain.ErrFechaInvalida
	}
	if !calendar.EsFechaValida(fecha, s.now()) {
		return nil, domain.ErrFechaInvalida
	}

	if horarios, ok := s.cache.Get(ctx, fecha); ok {
		return horarios, nil
	}

	ocupadas, err := s.repo.HorasOcupadas(ctx, fecha)
	if err != nil {
		return nil, err
	}

	horarios := calendar.HorariosDisponibles(ocupadas)
	s.cache.Set(ctx, fecha, horarios)

	return horarios, nil
}

// EstadisticasMes agrupa las citas del mes en curso por día y estado.
func (s *CitaService) EstadisticasMes(ctx context.Context) ([]domain.EstadisticaDiaria, error) {
	ahora := s.now()
	inicio := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	fin := inicio.AddDate(0, 1, -1)

	return s.repo.EstadisticasDiarias(ctx, inicio, fin)
}
