package domain

import "time"

type EstadoCita string

const (
	EstadoPendiente  EstadoCita = "pendiente"
	EstadoConfirmada EstadoCita = "confirmada"
	EstadoCancelada  EstadoCita = "cancelada"
	EstadoCompletada EstadoCita = "completada"
)

func (e EstadoCita) Valido() bool {
	switch e {
	case EstadoPendiente, EstadoConfirmada, EstadoCancelada, EstadoCompletada:
		return true
	}
	return false
}

type TipoCita string

const (
	TipoConsulta   TipoCita = "consulta"
	TipoOperacion  TipoCita = "operacion"
	TipoVacunacion TipoCita = "vacunacion"
	TipoEmergencia TipoCita = "emergencia"
)

func (t TipoCita) Valido() bool {
	switch t {
	case TipoConsulta, TipoOperacion, TipoVacunacion, TipoEmergencia:
		return true
	}
	return false
}

type Cita struct {
	ID        int64      `json:"id"`
	MascotaID int64      `json:"mascotaId"`
	UsuarioID int64      `json:"usuarioId"`
	Tipo      TipoCita   `json:"tipo"`
	Fecha     time.Time  `json:"fecha"`
	Hora      string     `json:"hora"`
	Motivo    string     `json:"motivo"`
	Estado    EstadoCita `json:"estado"`
	Notas     string     `json:"notas,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	MascotaNombre   string `json:"mascotaNombre,omitempty"`
	MascotaEspecie  string `json:"mascotaEspecie,omitempty"`
	MascotaRaza     string `json:"mascotaRaza,omitempty"`
	UsuarioNombre   string `json:"usuarioNombre,omitempty"`
	UsuarioEmail    string `json:"usuarioEmail,omitempty"`
	UsuarioTelefono string `json:"usuarioTelefono,omitempty"`
}

// PuedeCancelar indica si la cita admite cancelación: toda cita que
// no haya sido completada puede cancelarse, incluso una ya cancelada.
func (c *Cita) PuedeCancelar() bool {
	return c.Estado != EstadoCompletada
}

// PuedeModificar indica si un usuario sin privilegios puede editar la
// cita. Los administradores editan en cualquier estado.
func (c *Cita) PuedeModificar(esAdmin bool) bool {
	if esAdmin {
		return true
	}
	return c.Estado == EstadoPendiente
}

type CreateCitaInput struct {
	MascotaID int64  `json:"mascotaId" binding:"required"`
	Tipo      string `json:"tipo" binding:"required,oneof=consulta operacion vacunacion emergencia"`
	Fecha     string `json:"fecha" binding:"required"`
	Hora      string `json:"hora" binding:"required"`
	Motivo    string `json:"motivo" binding:"required,min=3"`
	Notas     string `json:"notas"`
}

type UpdateCitaInput struct {
	MascotaID *int64  `json:"mascotaId"`
	Tipo      *string `json:"tipo"`
	Fecha     *string `json:"fecha"`
	Hora      *string `json:"hora"`
	Motivo    *string `json:"motivo"`
	Notas     *string `json:"notas"`
	Estado    *string `json:"estado"`
}

type CitaFilter struct {
	Fecha     *time.Time
	Estado    EstadoCita
	Tipo      TipoCita
	UsuarioID int64
}

type ResultadoMantenimiento struct {
	CitasActualizadas int64     `json:"citasActualizadas"`
	CitasEliminadas   int64     `json:"citasEliminadas"`
	Success           bool      `json:"success"`
	Timestamp         time.Time `json:"timestamp"`
}

type EstadisticasMantenimiento struct {
	PorEstado            map[string]int64 `json:"porEstado"`
	CitasVencidas        int64            `json:"citasVencidas"`
	ElegiblesEliminacion int64            `json:"elegiblesEliminacion"`
	Total                int64            `json:"total"`
	Timestamp            time.Time        `json:"timestamp"`
}

type ConfigMantenimiento struct {
	Activo           bool          `json:"activo"`
	Intervalo        time.Duration `json:"-"`
	IntervaloHoras   float64       `json:"intervaloHoras"`
	DiasRetencion    int           `json:"diasRetencion"`
	ProximaEjecucion *time.Time    `json:"proximaEjecucion,omitempty"`
	UltimaEjecucion  *time.Time    `json:"ultimaEjecucion,omitempty"`
}

type EstadisticaMensual struct {
	Mes   string `json:"mes"`
	Total int64  `json:"total"`
}

type EstadisticaDiaria struct {
	Fecha  string `json:"fecha"`
	Estado string `json:"estado"`
	Total  int64  `json:"total"`
}

type DashboardStats struct {
	TotalUsuarios  int64                `json:"totalUsuarios"`
	TotalMascotas  int64                `json:"totalMascotas"`
	TotalCitas     int64                `json:"totalCitas"`
	CitasHoy       int64                `json:"citasHoy"`
	CitasPorEstado map[string]int64     `json:"citasPorEstado"`
	CitasPorMes    []EstadisticaMensual `json:"citasPorMes"`
}
