package domain

import "testing"

func TestEstadoCitaValido(t *testing.T) {
	validos := []EstadoCita{EstadoPendiente, EstadoConfirmada, EstadoCancelada, EstadoCompletada}
	for _, e := range validos {
		if !e.Valido() {
			t.Errorf("el estado %q debería ser válido", e)
		}
	}

	invalidos := []EstadoCita{"", "Pendiente", "archivada", "completado"}
	for _, e := range invalidos {
		if e.Valido() {
			t.Errorf("el estado %q no debería ser válido", e)
		}
	}
}

func TestTipoCitaValido(t *testing.T) {
	validos := []TipoCita{TipoConsulta, TipoOperacion, TipoVacunacion, TipoEmergencia}
	for _, tipo := range validos {
		if !tipo.Valido() {
			t.Errorf("el tipo %q debería ser válido", tipo)
		}
	}

	if TipoCita("cirugia").Valido() {
		t.Error("el tipo cirugia no debería ser válido")
	}
}

func TestPuedeCancelar(t *testing.T) {
	tests := []struct {
		estado EstadoCita
		want   bool
	}{
		{EstadoPendiente, true},
		{EstadoConfirmada, true},
		{EstadoCancelada, true},
		{EstadoCompletada, false},
	}

	for _, tt := range tests {
		c := Cita{Estado: tt.estado}
		if got := c.PuedeCancelar(); got != tt.want {
			t.Errorf("PuedeCancelar con estado %q = %v, se esperaba %v", tt.estado, got, tt.want)
		}
	}
}

func TestPuedeModificar(t *testing.T) {
	tests := []struct {
		estado  EstadoCita
		esAdmin bool
		want    bool
	}{
		{EstadoPendiente, false, true},
		{EstadoConfirmada, false, false},
		{EstadoCancelada, false, false},
		{EstadoCompletada, false, false},
		{EstadoConfirmada, true, true},
		{EstadoCompletada, true, true},
	}

	for _, tt := range tests {
		c := Cita{Estado: tt.estado}
		if got := c.PuedeModificar(tt.esAdmin); got != tt.want {
			t.Errorf("PuedeModificar(%v) con estado %q = %v, se esperaba %v",
				tt.esAdmin, tt.estado, got, tt.want)
		}
	}
}
