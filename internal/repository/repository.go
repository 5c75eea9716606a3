package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"biosys/internal/domain"
)

type Users interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type Sessions interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Mascotas interface {
	Create(ctx context.Context, mascota *domain.Mascota) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Mascota, error)
	ListByUsuario(ctx context.Context, usuarioID int64) ([]domain.Mascota, error)
	List(ctx context.Context) ([]domain.Mascota, error)
	Update(ctx context.Context, mascota *domain.Mascota) error
	Delete(ctx context.Context, id int64) error
	SetFotoURL(ctx context.Context, id int64, url string) error
	Count(ctx context.Context) (int64, error)

	AddVacuna(ctx context.Context, vacuna *domain.Vacuna) (int64, error)
	ListVacunas(ctx context.Context, mascotaID int64) ([]domain.Vacuna, error)
	AddOperacion(ctx context.Context, operacion *domain.Operacion) (int64, error)
	ListOperaciones(ctx context.Context, mascotaID int64) ([]domain.Operacion, error)
}

type Citas interface {
	Create(ctx context.Context, cita *domain.Cita) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Cita, error)
	List(ctx context.Context, filter domain.CitaFilter) ([]domain.Cita, error)
	Update(ctx context.Context, cita *domain.Cita) error
	UpdateEstado(ctx context.Context, id int64, estado domain.EstadoCita) error
	Delete(ctx context.Context, id int64) error
	HorasOcupadas(ctx context.Context, fecha time.Time) ([]string, error)

	ActualizarVencidas(ctx context.Context, hoy time.Time, horaActual string) (int64, error)
	EliminarAntiguas(ctx context.Context, limite time.Time) (int64, error)
	ContarPorEstado(ctx context.Context) (map[string]int64, error)
	ContarVencidas(ctx context.Context, hoy time.Time, horaActual string) (int64, error)
	ContarElegiblesEliminacion(ctx context.Context, limite time.Time) (int64, error)
	ContarTotal(ctx context.Context) (int64, error)
	ContarHoy(ctx context.Context, hoy time.Time) (int64, error)
	EstadisticasMensuales(ctx context.Context, inicio, fin time.Time) ([]domain.EstadisticaMensual, error)
	EstadisticasDiarias(ctx context.Context, inicio, fin time.Time) ([]domain.EstadisticaDiaria, error)
}

type Repositories struct {
	Users    Users
	Sessions Sessions
	Mascotas Mascotas
	Citas    Citas
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    NewUserRepo(db),
		Sessions: NewSessionRepo(db),
		Mascotas: NewMascotaRepo(db),
		Citas:    NewCitaRepo(db),
	}
}
