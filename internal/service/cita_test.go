package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	"biosys/internal/cache"
	"biosys/internal/domain"
	"biosys/internal/repository"
)

type fakeMascotas struct {
	repository.Mascotas
	mascotas map[int64]*domain.Mascota
}

func (f *fakeMascotas) GetByID(ctx context.Context, id int64) (*domain.Mascota, error) {
	m, ok := f.mascotas[id]
	if !ok {
		return nil, domain.ErrMascotaNoEncontrada
	}
	copia := *m
	return &copia, nil
}

type fakeCitas struct {
	repository.Citas
	citas  map[int64]*domain.Cita
	nextID int64

	errVencidas error
	errAntiguas error
}

func newFakeCitas() *fakeCitas {
	return &fakeCitas{citas: make(map[int64]*domain.Cita), nextID: 1}
}

func (f *fakeCitas) Create(ctx context.Context, cita *domain.Cita) (int64, error) {
	for _, c := range f.citas {
		if c.Fecha.Equal(cita.Fecha) && c.Hora == cita.Hora {
			return 0, domain.ErrHorarioOcupado
		}
	}

	id := f.nextID
	f.nextID++
	copia := *cita
	copia.ID = id
	f.citas[id] = &copia
	return id, nil
}

func (f *fakeCitas) GetByID(ctx context.Context, id int64) (*domain.Cita, error) {
	c, ok := f.citas[id]
	if !ok {
		return nil, domain.ErrNoEncontrada
	}
	copia := *c
	return &copia, nil
}

func (f *fakeCitas) List(ctx context.Context, filter domain.CitaFilter) ([]domain.Cita, error) {
	var out []domain.Cita
	for _, c := range f.citas {
		if filter.UsuarioID != 0 && c.UsuarioID != filter.UsuarioID {
			continue
		}
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCitas) Update(ctx context.Context, cita *domain.Cita) error {
	for _, c := range f.citas {
		if c.ID != cita.ID && c.Fecha.Equal(cita.Fecha) && c.Hora == cita.Hora {
			return domain.ErrHorarioOcupado
		}
	}
	if _, ok := f.citas[cita.ID]; !ok {
		return domain.ErrNoEncontrada
	}
	copia := *cita
	f.citas[cita.ID] = &copia
	return nil
}

func (f *fakeCitas) UpdateEstado(ctx context.Context, id int64, estado domain.EstadoCita) error {
	c, ok := f.citas[id]
	if !ok {
		return domain.ErrNoEncontrada
	}
	c.Estado = estado
	return nil
}

func (f *fakeCitas) Delete(ctx context.Context, id int64) error {
	if _, ok := f.citas[id]; !ok {
		return domain.ErrNoEncontrada
	}
	delete(f.citas, id)
	return nil
}

func (f *fakeCitas) HorasOcupadas(ctx context.Context, fecha time.Time) ([]string, error) {
	var horas []string
	for _, c := range f.citas {
		if c.Fecha.Equal(fecha) {
			horas = append(horas, c.Hora)
		}
	}
	return horas, nil
}

func (f *fakeCitas) ActualizarVencidas(ctx context.Context, hoy time.Time, horaActual string) (int64, error) {
	if f.errVencidas != nil {
		return 0, f.errVencidas
	}
	var n int64
	for _, c := range f.citas {
		if c.Estado != domain.EstadoPendiente && c.Estado != domain.EstadoConfirmada {
			continue
		}
		if c.Fecha.Before(hoy) || (c.Fecha.Equal(hoy) && c.Hora < horaActual) {
			c.Estado = domain.EstadoCompletada
			n++
		}
	}
	return n, nil
}

func (f *fakeCitas) EliminarAntiguas(ctx context.Context, limite time.Time) (int64, error) {
	if f.errAntiguas != nil {
		return 0, f.errAntiguas
	}
	var n int64
	for id, c := range f.citas {
		if c.Estado != domain.EstadoCompletada && c.Estado != domain.EstadoCancelada {
			continue
		}
		if !c.Fecha.After(limite) {
			delete(f.citas, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeCitas) ContarPorEstado(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, c := range f.citas {
		counts[string(c.Estado)]++
	}
	return counts, nil
}

func (f *fakeCitas) ContarVencidas(ctx context.Context, hoy time.Time, horaActual string) (int64, error) {
	var n int64
	for _, c := range f.citas {
		if c.Estado != domain.EstadoPendiente && c.Estado != domain.EstadoConfirmada {
			continue
		}
		if c.Fecha.Before(hoy) || (c.Fecha.Equal(hoy) && c.Hora < horaActual) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCitas) ContarElegiblesEliminacion(ctx context.Context, limite time.Time) (int64, error) {
	var n int64
	for _, c := range f.citas {
		if c.Estado != domain.EstadoCompletada && c.Estado != domain.EstadoCancelada {
			continue
		}
		if !c.Fecha.After(limite) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCitas) ContarTotal(ctx context.Context) (int64, error) {
	return int64(len(f.citas)), nil
}

// martes 10 de junio de 2025, 10:00
var ahoraFija = time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)

func newTestCitaService(citas *fakeCitas, mascotas *fakeMascotas) *CitaService {
	s := NewCitaService(citas, mascotas, cache.NewNoop(), zap.NewNop())
	s.now = func() time.Time { return ahoraFija }
	return s
}

func dia(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func mascotasDePrueba() *fakeMascotas {
	return &fakeMascotas{mascotas: map[int64]*domain.Mascota{
		1: {ID: 1, Nombre: "Firulais", Especie: "Perro", UsuarioID: 10},
		2: {ID: 2, Nombre: "Michi", Especie: "Gato", UsuarioID: 20},
	}}
}

func TestCrearCita(t *testing.T) {
	svc := newTestCitaService(newFakeCitas(), mascotasDePrueba())

	cita, err := svc.Crear(context.Background(), 10, false, domain.CreateCitaInput{
		MascotaID: 1,
		Tipo:      "consulta",
		Fecha:     "2025-06-11",
		Hora:      "09:00",
		Motivo:    "Chequeo general",
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if cita.Estado != domain.EstadoPendiente {
		t.Errorf("estado inicial = %q, se esperaba pendiente", cita.Estado)
	}
	if cita.UsuarioID != 10 {
		t.Errorf("usuario = %d, se esperaba 10", cita.UsuarioID)
	}
	if !cita.Fecha.Equal(dia(2025, 6, 11)) {
		t.Errorf("fecha inesperada: %v", cita.Fecha)
	}
}

func TestCrearCitaValidaciones(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.CreateCitaInput
		wantErr error
	}{
		{
			name: "fecha pasada",
			input: domain.CreateCitaInput{
				MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-09", Hora: "09:00", Motivo: "Chequeo",
			},
			wantErr: domain.ErrFechaInvalida,
		},
		{
			name: "domingo",
			input: domain.CreateCitaInput{
				MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-15", Hora: "09:00", Motivo: "Chequeo",
			},
			wantErr: domain.ErrFechaInvalida,
		},
		{
			name: "hora de almuerzo",
			input: domain.CreateCitaInput{
				MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "13:00", Motivo: "Chequeo",
			},
			wantErr: domain.ErrHoraInvalida,
		},
		{
			name: "fuera de horario",
			input: domain.CreateCitaInput{
				MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "19:00", Motivo: "Chequeo",
			},
			wantErr: domain.ErrHoraInvalida,
		},
		{
			name: "hora malformada",
			input: domain.CreateCitaInput{
				MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "09:00x", Motivo: "Chequeo",
			},
			wantErr: domain.ErrHoraInvalida,
		},
		{
			name: "fecha malformada",
			input: domain.CreateCitaInput{
				MascotaID: 1, Tipo: "consulta", Fecha: "11/06/2025", Hora: "09:00", Motivo: "Chequeo",
			},
			wantErr: domain.ErrFechaInvalida,
		},
		{
			name: "motivo en blanco",
			input: domain.CreateCitaInput{
				MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "09:00", Motivo: "   ",
			},
			wantErr: domain.ErrMotivoRequerido,
		},
		{
			name: "mascota inexistente",
			input: domain.CreateCitaInput{
				MascotaID: 99, Tipo: "consulta", Fecha: "2025-06-11", Hora: "09:00", Motivo: "Chequeo",
			},
			wantErr: domain.ErrMascotaNoEncontrada,
		},
		{
			name: "mascota ajena",
			input: domain.CreateCitaInput{
				MascotaID: 2, Tipo: "consulta", Fecha: "2025-06-11", Hora: "09:00", Motivo: "Chequeo",
			},
			wantErr: domain.ErrNoAutorizado,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCitaService(newFakeCitas(), mascotasDePrueba())

			_, err := svc.Crear(context.Background(), 10, false, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, se esperaba %v", err, tt.wantErr)
			}
		})
	}
}

func TestCrearCitaHorarioOcupado(t *testing.T) {
	svc := newTestCitaService(newFakeCitas(), mascotasDePrueba())

	input := domain.CreateCitaInput{
		MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "09:00", Motivo: "Chequeo",
	}

	if _, err := svc.Crear(context.Background(), 10, false, input); err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	_, err := svc.Crear(context.Background(), 10, false, input)
	if !errors.Is(err, domain.ErrHorarioOcupado) {
		t.Errorf("error = %v, se esperaba ErrHorarioOcupado", err)
	}
}

func TestCrearCitaHoraSinCeroInicial(t *testing.T) {
	svc := newTestCitaService(newFakeCitas(), mascotasDePrueba())

	cita, err := svc.Crear(context.Background(), 10, false, domain.CreateCitaInput{
		MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "7:30", Motivo: "Chequeo",
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if cita.Hora != "07:30" {
		t.Errorf("hora = %q, se esperaba la forma canónica 07:30", cita.Hora)
	}

	// con o sin cero inicial es el mismo turno
	_, err = svc.Crear(context.Background(), 10, false, domain.CreateCitaInput{
		MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "07:30", Motivo: "Control",
	})
	if !errors.Is(err, domain.ErrHorarioOcupado) {
		t.Errorf("error = %v, se esperaba ErrHorarioOcupado", err)
	}

	horarios, err := svc.HorariosDisponibles(context.Background(), "2025-06-11")
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	for _, h := range horarios {
		if h.Hora == "07:30" {
			t.Error("07:30 está reservado y no debería listarse")
		}
	}
}

func TestCancelarCita(t *testing.T) {
	citas := newFakeCitas()
	svc := newTestCitaService(citas, mascotasDePrueba())

	cita, err := svc.Crear(context.Background(), 10, false, domain.CreateCitaInput{
		MascotaID: 1, Tipo: "consulta", Fecha: "2025-06-11", Hora: "09:00", Motivo: "Chequeo",
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	cancelada, err := svc.Cancelar(context.Background(), 10, false, cita.ID)
	if err != nil {
		t.Fatalf("error inesperado al cancelar: %v", err)
	}
	if cancelada.Estado != domain.EstadoCancelada {
		t.Errorf("estado = %q, se esperaba cancelada", cancelada.Estado)
	}

	// cancelar dos veces no es un error
	if _, err := svc.Cancelar(context.Background(), 10, false, cita.ID); err != nil {
		t.Errorf("cancelar una cita cancelada debería ser válido: %v", err)
	}
}

func TestCancelarCitaCompletada(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{
		ID: 1, UsuarioID: 10, Fecha: dia(2025, 6, 9), Hora: "09:00",
		Estado: domain.EstadoCompletada,
	}
	citas.nextID = 2

	svc := newTestCitaService(citas, mascotasDePrueba())

	_, err := svc.Cancelar(context.Background(), 10, false, 1)
	if !errors.Is(err, domain.ErrCitaCompletada) {
		t.Errorf("error = %v, se esperaba ErrCitaCompletada", err)
	}
}

func TestCancelarCitaAjena(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{
		ID: 1, UsuarioID: 20, Fecha: dia(2025, 6, 11), Hora: "09:00",
		Estado: domain.EstadoPendiente,
	}
	citas.nextID = 2

	svc := newTestCitaService(citas, mascotasDePrueba())

	if _, err := svc.Cancelar(context.Background(), 10, false, 1); !errors.Is(err, domain.ErrNoAutorizado) {
		t.Errorf("error = %v, se esperaba ErrNoAutorizado", err)
	}

	// un administrador sí puede cancelarla
	if _, err := svc.Cancelar(context.Background(), 99, true, 1); err != nil {
		t.Errorf("el administrador debería poder cancelar: %v", err)
	}
}

func TestActualizarCitaSoloPendientes(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{
		ID: 1, MascotaID: 1, UsuarioID: 10, Tipo: domain.TipoConsulta,
		Fecha: dia(2025, 6, 11), Hora: "09:00", Motivo: "Chequeo",
		Estado: domain.EstadoConfirmada,
	}
	citas.nextID = 2

	svc := newTestCitaService(citas, mascotasDePrueba())

	nuevoMotivo := "Vacuna anual"
	_, err := svc.Actualizar(context.Background(), 10, false, 1, domain.UpdateCitaInput{
		Motivo: &nuevoMotivo,
	})
	if !errors.Is(err, domain.ErrSoloPendientes) {
		t.Errorf("error = %v, se esperaba ErrSoloPendientes", err)
	}

	// el administrador edita en cualquier estado
	actualizada, err := svc.Actualizar(context.Background(), 99, true, 1, domain.UpdateCitaInput{
		Motivo: &nuevoMotivo,
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if actualizada.Motivo != nuevoMotivo {
		t.Errorf("motivo = %q, se esperaba %q", actualizada.Motivo, nuevoMotivo)
	}
}

func TestActualizarEstadoSoloAdmin(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{
		ID: 1, MascotaID: 1, UsuarioID: 10, Tipo: domain.TipoConsulta,
		Fecha: dia(2025, 6, 11), Hora: "09:00", Motivo: "Chequeo",
		Estado: domain.EstadoPendiente,
	}
	citas.nextID = 2

	svc := newTestCitaService(citas, mascotasDePrueba())

	confirmada := "confirmada"
	_, err := svc.Actualizar(context.Background(), 10, false, 1, domain.UpdateCitaInput{
		Estado: &confirmada,
	})
	if !errors.Is(err, domain.ErrNoAutorizado) {
		t.Errorf("error = %v, se esperaba ErrNoAutorizado", err)
	}

	cita, err := svc.Actualizar(context.Background(), 99, true, 1, domain.UpdateCitaInput{
		Estado: &confirmada,
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if cita.Estado != domain.EstadoConfirmada {
		t.Errorf("estado = %q, se esperaba confirmada", cita.Estado)
	}
}

func TestActualizarCitaReagendada(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{
		ID: 1, MascotaID: 1, UsuarioID: 10, Tipo: domain.TipoConsulta,
		Fecha: dia(2025, 6, 11), Hora: "09:00", Motivo: "Chequeo",
		Estado: domain.EstadoPendiente,
	}
	citas.citas[2] = &domain.Cita{
		ID: 2, MascotaID: 2, UsuarioID: 20, Tipo: domain.TipoConsulta,
		Fecha: dia(2025, 6, 12), Hora: "10:00", Motivo: "Control",
		Estado: domain.EstadoPendiente,
	}
	citas.nextID = 3

	svc := newTestCitaService(citas, mascotasDePrueba())

	fecha, hora := "2025-06-12", "10:00"
	_, err := svc.Actualizar(context.Background(), 10, false, 1, domain.UpdateCitaInput{
		Fecha: &fecha, Hora: &hora,
	})
	if !errors.Is(err, domain.ErrHorarioOcupado) {
		t.Errorf("error = %v, se esperaba ErrHorarioOcupado", err)
	}

	horaLibre := "10:30"
	cita, err := svc.Actualizar(context.Background(), 10, false, 1, domain.UpdateCitaInput{
		Fecha: &fecha, Hora: &horaLibre,
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if cita.Hora != horaLibre || !cita.Fecha.Equal(dia(2025, 6, 12)) {
		t.Errorf("reagendamiento inesperado: %s %s", cita.Fecha, cita.Hora)
	}
}

func TestListarCitasDelUsuario(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{ID: 1, UsuarioID: 10, Fecha: dia(2025, 6, 11), Hora: "09:00", Estado: domain.EstadoPendiente}
	citas.citas[2] = &domain.Cita{ID: 2, UsuarioID: 20, Fecha: dia(2025, 6, 11), Hora: "10:00", Estado: domain.EstadoPendiente}
	citas.nextID = 3

	svc := newTestCitaService(citas, mascotasDePrueba())

	propias, err := svc.Listar(context.Background(), 10, false, domain.CitaFilter{})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if len(propias) != 1 || propias[0].UsuarioID != 10 {
		t.Errorf("el usuario solo debería ver sus citas: %+v", propias)
	}

	todas, err := svc.Listar(context.Background(), 99, true, domain.CitaFilter{})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if len(todas) != 2 {
		t.Errorf("el administrador debería ver todas las citas, obtuvo %d", len(todas))
	}
}

func TestHorariosDisponibles(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{ID: 1, UsuarioID: 10, Fecha: dia(2025, 6, 11), Hora: "09:00", Estado: domain.EstadoPendiente}
	citas.nextID = 2

	svc := newTestCitaService(citas, mascotasDePrueba())

	horarios, err := svc.HorariosDisponibles(context.Background(), "2025-06-11")
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if len(horarios) != 19 {
		t.Errorf("se esperaban 19 horarios libres, se obtuvieron %d", len(horarios))
	}
	for _, h := range horarios {
		if h.Hora == "09:00" {
			t.Error("09:00 está reservado y no debería listarse")
		}
	}

	if _, err := svc.HorariosDisponibles(context.Background(), "2025-06-15"); !errors.Is(err, domain.ErrFechaInvalida) {
		t.Errorf("domingo: error = %v, se esperaba ErrFechaInvalida", err)
	}
	if _, err := svc.HorariosDisponibles(context.Background(), "2025-06-02"); !errors.Is(err, domain.ErrFechaInvalida) {
		t.Errorf("fecha pasada: error = %v, se esperaba ErrFechaInvalida", err)
	}
}
