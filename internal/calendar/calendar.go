// Package calendar concentra las reglas de horario de atención de la
// clínica: lunes a sábado, de 07:00 a 12:00 y de 14:00 a 18:00.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	AperturaManana = 7 * 60
	CierreManana   = 12 * 60
	AperturaTarde  = 14 * 60
	CierreTarde    = 18 * 60

	DuracionTurno = 30

	FormatoFecha = "2006-01-02"
)

// HoraDelDia representa una hora del día como minutos desde la medianoche.
type HoraDelDia int

var horaRegex = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

// ParseHora acepta horas en formato HH:MM o H:MM. La cadena completa
// debe ser la hora: cualquier carácter sobrante la invalida.
func ParseHora(s string) (HoraDelDia, error) {
	match := horaRegex.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	h, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	return HoraDelDia(h*60 + m), nil
}

func (h HoraDelDia) String() string {
	return fmt.Sprintf("%02d:%02d", int(h)/60, int(h)%60)
}

// EnHorarioAtencion indica si la hora cae dentro de alguno de los dos
// bloques de atención, incluyendo los límites de cada bloque.
func (h HoraDelDia) EnHorarioAtencion() bool {
	m := int(h)
	return (m >= AperturaManana && m <= CierreManana) ||
		(m >= AperturaTarde && m <= CierreTarde)
}

// Periodo devuelve "mañana" o "tarde" según el bloque al que pertenece
// la hora, o cadena vacía si está fuera del horario de atención.
func (h HoraDelDia) Periodo() string {
	m := int(h)
	switch {
	case m >= AperturaManana && m <= CierreManana:
		return "mañana"
	case m >= AperturaTarde && m <= CierreTarde:
		return "tarde"
	}
	return ""
}

// NormalizarFecha interpreta una fecha en formato YYYY-MM-DD y la
// devuelve a medianoche en hora local.
func NormalizarFecha(s string) (time.Time, error) {
	t, err := time.ParseInLocation(FormatoFecha, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

// EsFechaValida comprueba que la fecha no sea un domingo ni anterior al
// día actual. La comparación ignora la hora.
func EsFechaValida(fecha, ahora time.Time) bool {
	if fecha.Weekday() == time.Sunday {
		return false
	}
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	dia := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, ahora.Location())
	return !dia.Before(hoy)
}

// NormalizarHora valida la hora contra el horario de atención y la
// devuelve en su forma canónica HH:MM con cero inicial. Toda hora que
// se persiste pasa por aquí, de modo que "7:30" y "07:30" nombran el
// mismo turno ante el índice único por (fecha, hora).
func NormalizarHora(hora string) (string, error) {
	h, err := ParseHora(hora)
	if err != nil {
		return "", err
	}
	if !h.EnHorarioAtencion() {
		return "", fmt.Errorf("hora %s fuera del horario de atención", h)
	}
	return h.String(), nil
}

type Horario struct {
	Hora       string `json:"hora"`
	Periodo    string `json:"periodo"`
	Disponible bool   `json:"disponible"`
}

// HorariosDisponibles genera la grilla de turnos de 30 minutos del día
// y descarta las horas ya ocupadas: una hora reservada nunca aparece en
// el resultado, sin importar el estado de su cita.
func HorariosDisponibles(ocupadas []string) []Horario {
	ocupadasSet := make(map[string]struct{}, len(ocupadas))
	for _, o := range ocupadas {
		h, err := ParseHora(o)
		if err != nil {
			continue
		}
		ocupadasSet[h.String()] = struct{}{}
	}

	var horarios []Horario
	for _, bloque := range [][2]int{
		{AperturaManana, CierreManana},
		{AperturaTarde, CierreTarde},
	} {
		for m := bloque[0]; m <= bloque[1]; m += DuracionTurno {
			h := HoraDelDia(m)
			if _, ocupada := ocupadasSet[h.String()]; ocupada {
				continue
			}
			horarios = append(horarios, Horario{
				Hora:       h.String(),
				Periodo:    h.Periodo(),
				Disponible: true,
			})
		}
	}
	return horarios
}
