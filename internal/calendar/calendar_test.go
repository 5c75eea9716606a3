package calendar

import (
	"testing"
	"time"
)

func TestParseHora(t *testing.T) {
	tests := []struct {
		input   string
		want    HoraDelDia
		wantErr bool
	}{
		{"07:00", 420, false},
		{"7:00", 420, false},
		{"7:30", 450, false},
		{"12:00", 720, false},
		{"18:00", 1080, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:0", 0, true},
		{"09:00x", 0, true},
		{" 09:00", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseHora(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHora(%q): se esperaba error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHora(%q): error inesperado: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHora(%q) = %d, se esperaba %d", tt.input, got, tt.want)
		}
	}
}

func TestNormalizarHora(t *testing.T) {
	tests := []struct {
		hora    string
		want    string
		wantErr bool
	}{
		{"07:00", "07:00", false},
		{"7:00", "07:00", false},
		{"9:30", "09:30", false},
		{"12:00", "12:00", false},
		{"14:00", "14:00", false},
		{"16:45", "16:45", false},
		{"18:00", "18:00", false},
		{"12:30", "", true},
		{"13:00", "", true},
		{"18:30", "", true},
		{"06:59", "", true},
		{"00:00", "", true},
		{"09:00x", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizarHora(tt.hora)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizarHora(%q): se esperaba error, se obtuvo %q", tt.hora, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizarHora(%q): error inesperado: %v", tt.hora, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizarHora(%q) = %q, se esperaba %q", tt.hora, got, tt.want)
		}
	}
}

func TestPeriodo(t *testing.T) {
	tests := []struct {
		hora string
		want string
	}{
		{"07:00", "mañana"},
		{"12:00", "mañana"},
		{"14:00", "tarde"},
		{"18:00", "tarde"},
		{"13:00", ""},
	}

	for _, tt := range tests {
		h, err := ParseHora(tt.hora)
		if err != nil {
			t.Fatalf("ParseHora(%q): %v", tt.hora, err)
		}
		if got := h.Periodo(); got != tt.want {
			t.Errorf("Periodo(%q) = %q, se esperaba %q", tt.hora, got, tt.want)
		}
	}
}

func TestEsFechaValida(t *testing.T) {
	// martes 10 de junio de 2025
	ahora := time.Date(2025, 6, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name  string
		fecha time.Time
		want  bool
	}{
		{"hoy", time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local), true},
		{"mañana", time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local), true},
		{"ayer", time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local), false},
		{"domingo", time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), false},
		{"sábado", time.Date(2025, 6, 14, 0, 0, 0, 0, time.Local), true},
	}

	for _, tt := range tests {
		if got := EsFechaValida(tt.fecha, ahora); got != tt.want {
			t.Errorf("%s: EsFechaValida = %v, se esperaba %v", tt.name, got, tt.want)
		}
	}
}

func TestHorariosDisponibles(t *testing.T) {
	// "7:30" sin cero inicial ocupa el mismo turno que "07:30"
	horarios := HorariosDisponibles([]string{"7:30", "14:00"})

	// 11 turnos de mañana (07:00 a 12:00) + 9 de tarde (14:00 a 18:00),
	// menos los dos ocupados
	if len(horarios) != 18 {
		t.Fatalf("se esperaban 18 horarios, se obtuvieron %d", len(horarios))
	}

	if horarios[0].Hora != "07:00" || horarios[0].Periodo != "mañana" || !horarios[0].Disponible {
		t.Errorf("primer horario inesperado: %+v", horarios[0])
	}

	byHora := make(map[string]Horario)
	for _, h := range horarios {
		byHora[h.Hora] = h
	}

	if _, ok := byHora["07:30"]; ok {
		t.Error("07:30 está ocupado y no debería listarse")
	}
	if _, ok := byHora["14:00"]; ok {
		t.Error("14:00 está ocupado y no debería listarse")
	}
	if !byHora["12:00"].Disponible {
		t.Error("12:00 debería estar disponible")
	}
	if byHora["12:00"].Periodo != "mañana" {
		t.Errorf("12:00 debería ser de la mañana, es %q", byHora["12:00"].Periodo)
	}
	if byHora["18:00"].Periodo != "tarde" {
		t.Errorf("18:00 debería ser de la tarde, es %q", byHora["18:00"].Periodo)
	}

	if _, ok := byHora["12:30"]; ok {
		t.Error("12:30 no debería estar en la grilla")
	}
	if _, ok := byHora["13:00"]; ok {
		t.Error("13:00 no debería estar en la grilla")
	}
}

func TestHorariosDisponiblesSinOcupadas(t *testing.T) {
	horarios := HorariosDisponibles(nil)
	if len(horarios) != 20 {
		t.Fatalf("la grilla completa tiene 20 turnos, se obtuvieron %d", len(horarios))
	}
}
