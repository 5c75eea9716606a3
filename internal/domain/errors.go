package domain

import "errors"

var (
	ErrNoEncontrada        = errors.New("recurso no encontrado")
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrMascotaNoEncontrada = errors.New("mascota no encontrada")
	ErrEmailEnUso          = errors.New("el correo electrónico ya está registrado")
	ErrCredenciales        = errors.New("credenciales inválidas")
	ErrSesionExpirada      = errors.New("la sesión ha expirado")
	ErrHorarioOcupado      = errors.New("ya existe una cita agendada para esta fecha y hora")
	ErrFechaInvalida       = errors.New("fecha inválida")
	ErrHoraInvalida        = errors.New("hora fuera del horario de atención")
	ErrEstadoInvalido      = errors.New("estado de cita inválido")
	ErrMotivoRequerido     = errors.New("el motivo de la cita es obligatorio")
	ErrCitaCompletada      = errors.New("no se puede cancelar una cita completada")
	ErrSoloPendientes      = errors.New("solo se pueden modificar citas pendientes")
	ErrNoAutorizado        = errors.New("no autorizado para realizar esta acción")
)
