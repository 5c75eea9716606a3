package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"biosys/internal/domain"
)

func newTestMantenimiento(citas *fakeCitas) *MantenimientoService {
	s := NewMantenimientoService(citas, zap.NewNop())
	s.now = func() time.Time { return ahoraFija }
	return s
}

func TestEjecutarMantenimiento(t *testing.T) {
	citas := newFakeCitas()
	// vencida de ayer, debe completarse
	citas.citas[1] = &domain.Cita{ID: 1, Fecha: dia(2025, 6, 9), Hora: "09:00", Estado: domain.EstadoPendiente}
	// vencida de hoy más temprano, debe completarse
	citas.citas[2] = &domain.Cita{ID: 2, Fecha: dia(2025, 6, 10), Hora: "08:00", Estado: domain.EstadoConfirmada}
	// de hoy más tarde, queda intacta
	citas.citas[3] = &domain.Cita{ID: 3, Fecha: dia(2025, 6, 10), Hora: "15:00", Estado: domain.EstadoPendiente}
	// cancelada vieja, fuera del período de retención, debe purgarse
	citas.citas[4] = &domain.Cita{ID: 4, Fecha: dia(2025, 6, 1), Hora: "09:00", Estado: domain.EstadoCancelada}
	// completada reciente, dentro de retención, queda intacta
	citas.citas[5] = &domain.Cita{ID: 5, Fecha: dia(2025, 6, 9), Hora: "10:00", Estado: domain.EstadoCompletada}
	citas.nextID = 6

	svc := newTestMantenimiento(citas)

	resultado := svc.Ejecutar(context.Background())

	if !resultado.Success {
		t.Fatal("el resultado debería ser exitoso")
	}
	if resultado.CitasActualizadas != 2 {
		t.Errorf("actualizadas = %d, se esperaban 2", resultado.CitasActualizadas)
	}
	if resultado.CitasEliminadas != 1 {
		t.Errorf("eliminadas = %d, se esperaba 1", resultado.CitasEliminadas)
	}

	if citas.citas[3].Estado != domain.EstadoPendiente {
		t.Error("la cita futura de hoy no debería cambiar de estado")
	}
	if _, ok := citas.citas[4]; ok {
		t.Error("la cita cancelada antigua debería haberse purgado")
	}
	if _, ok := citas.citas[5]; !ok {
		t.Error("la cita completada reciente no debería purgarse")
	}
}

func TestEjecutarMantenimientoConError(t *testing.T) {
	citas := newFakeCitas()
	citas.errVencidas = errors.New("conexión perdida")

	svc := newTestMantenimiento(citas)

	resultado := svc.Ejecutar(context.Background())
	if resultado.Success {
		t.Error("el resultado no debería ser exitoso ante un error de base de datos")
	}
}

func TestEjecutarMantenimientoEnCurso(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{ID: 1, Fecha: dia(2025, 6, 9), Hora: "09:00", Estado: domain.EstadoPendiente}
	citas.nextID = 2

	svc := newTestMantenimiento(citas)
	svc.ejecutando = true

	resultado := svc.Ejecutar(context.Background())

	if !resultado.Success {
		t.Error("una pasada descartada se reporta como exitosa")
	}
	if resultado.CitasActualizadas != 0 {
		t.Error("una pasada descartada no debería tocar citas")
	}
	if citas.citas[1].Estado != domain.EstadoPendiente {
		t.Error("la cita vencida no debería modificarse mientras otra pasada está en curso")
	}
}

func TestIniciarDetenerIdempotentes(t *testing.T) {
	svc := NewMantenimientoService(newFakeCitas(), zap.NewNop())

	if svc.Activo() {
		t.Fatal("el ciclo no debería estar activo al crearse")
	}

	svc.Iniciar()
	svc.Iniciar()
	if !svc.Activo() {
		t.Fatal("el ciclo debería estar activo")
	}

	cfg := svc.Configuracion()
	if !cfg.Activo || cfg.ProximaEjecucion == nil {
		t.Errorf("configuración inesperada con el ciclo activo: %+v", cfg)
	}

	svc.Detener()
	svc.Detener()
	if svc.Activo() {
		t.Fatal("el ciclo debería estar detenido")
	}

	if cfg := svc.Configuracion(); cfg.ProximaEjecucion != nil {
		t.Error("no debería haber próxima ejecución con el ciclo detenido")
	}
}

func TestSetIntervalo(t *testing.T) {
	svc := newTestMantenimiento(newFakeCitas())

	if err := svc.SetIntervalo(30 * time.Second); err == nil {
		t.Error("un intervalo menor al mínimo debería rechazarse")
	}

	if err := svc.SetIntervalo(time.Hour); err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if cfg := svc.Configuracion(); cfg.IntervaloHoras != 1 {
		t.Errorf("intervalo = %v horas, se esperaba 1", cfg.IntervaloHoras)
	}
}

func TestLimiteRetencion(t *testing.T) {
	svc := newTestMantenimiento(newFakeCitas())

	limite := svc.limiteRetencion(ahoraFija)

	// tres días antes del 10 de junio, al final del día
	esperado := time.Date(2025, 6, 7, 23, 59, 59, 999000000, time.Local)
	if !limite.Equal(esperado) {
		t.Errorf("límite = %v, se esperaba %v", limite, esperado)
	}
}

func TestEstadisticasMantenimiento(t *testing.T) {
	citas := newFakeCitas()
	citas.citas[1] = &domain.Cita{ID: 1, Fecha: dia(2025, 6, 9), Hora: "09:00", Estado: domain.EstadoPendiente}
	citas.citas[2] = &domain.Cita{ID: 2, Fecha: dia(2025, 6, 1), Hora: "09:00", Estado: domain.EstadoCancelada}
	citas.citas[3] = &domain.Cita{ID: 3, Fecha: dia(2025, 6, 12), Hora: "09:00", Estado: domain.EstadoPendiente}
	citas.nextID = 4

	svc := newTestMantenimiento(citas)

	stats, err := svc.Estadisticas(context.Background())
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if stats.Total != 3 {
		t.Errorf("total = %d, se esperaban 3", stats.Total)
	}
	if stats.CitasVencidas != 1 {
		t.Errorf("vencidas = %d, se esperaba 1", stats.CitasVencidas)
	}
	if stats.ElegiblesEliminacion != 1 {
		t.Errorf("eliminables = %d, se esperaba 1", stats.ElegiblesEliminacion)
	}
	if stats.PorEstado["pendiente"] != 2 {
		t.Errorf("pendientes = %d, se esperaban 2", stats.PorEstado["pendiente"])
	}
}
