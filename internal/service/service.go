package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"biosys/config"
	"biosys/internal/cache"
	"biosys/internal/calendar"
	"biosys/internal/domain"
	"biosys/internal/repository"
	"biosys/internal/storage"
)

type Auth interface {
	Register(ctx context.Context, input domain.RegisterUserInput) (int64, error)
	Login(ctx context.Context, input domain.LoginInput, userAgent, ip string) (*domain.User, domain.Tokens, error)
	Refresh(ctx context.Context, refreshToken, userAgent, ip string) (domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(token string) (int64, domain.UserRole, error)
}

type Users interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type Mascotas interface {
	Create(ctx context.Context, usuarioID int64, input domain.CreateMascotaInput) (*domain.Mascota, error)
	GetByID(ctx context.Context, usuarioID int64, esAdmin bool, id int64) (*domain.Mascota, error)
	List(ctx context.Context, usuarioID int64, esAdmin bool) ([]domain.Mascota, error)
	Update(ctx context.Context, usuarioID int64, esAdmin bool, id int64, input domain.UpdateMascotaInput) (*domain.Mascota, error)
	Delete(ctx context.Context, usuarioID int64, esAdmin bool, id int64) error
	SubirFoto(ctx context.Context, usuarioID int64, esAdmin bool, id int64, file storage.UploadInput) (string, error)

	AddVacuna(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64, input domain.CreateVacunaInput, imagen *storage.UploadInput) (*domain.Vacuna, error)
	ListVacunas(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64) ([]domain.Vacuna, error)
	AddOperacion(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64, input domain.CreateOperacionInput, imagen *storage.UploadInput) (*domain.Operacion, error)
	ListOperaciones(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64) ([]domain.Operacion, error)
}

type Citas interface {
	Crear(ctx context.Context, usuarioID int64, esAdmin bool, input domain.CreateCitaInput) (*domain.Cita, error)
	Obtener(ctx context.Context, usuarioID int64, esAdmin bool, id int64) (*domain.Cita, error)
	Listar(ctx context.Context, usuarioID int64, esAdmin bool, filter domain.CitaFilter) ([]domain.Cita, error)
	Actualizar(ctx context.Context, usuarioID int64, esAdmin bool, id int64, input domain.UpdateCitaInput) (*domain.Cita, error)
	Cancelar(ctx context.Context, usuarioID int64, esAdmin bool, id int64) (*domain.Cita, error)
	CambiarEstado(ctx context.Context, id int64, estado string) (*domain.Cita, error)
	Eliminar(ctx context.Context, id int64) error
	HorariosDisponibles(ctx context.Context, fecha string) ([]calendar.Horario, error)
	EstadisticasMes(ctx context.Context) ([]domain.EstadisticaDiaria, error)
}

type Mantenimiento interface {
	Iniciar()
	Detener()
	Activo() bool
	Ejecutar(ctx context.Context) domain.ResultadoMantenimiento
	Estadisticas(ctx context.Context) (domain.EstadisticasMantenimiento, error)
	Configuracion() domain.ConfigMantenimiento
	SetIntervalo(intervalo time.Duration) error
}

type Admin interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
}

type Services struct {
	Auth          Auth
	Users         Users
	Mascotas      Mascotas
	Citas         Citas
	Mantenimiento Mantenimiento
	Admin         Admin
}

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       cache.HorariosCache
}

func NewServices(deps Deps) *Services {
	horarios := deps.Cache
	if horarios == nil {
		horarios = cache.NewNoop()
	}

	citas := NewCitaService(deps.Repos.Citas, deps.Repos.Mascotas, horarios, deps.Logger)

	return &Services{
		Auth:          NewAuthService(deps.Repos.Users, deps.Repos.Sessions, deps.Config.JWT, deps.Logger),
		Users:         NewUserService(deps.Repos.Users),
		Mascotas:      NewMascotaService(deps.Repos.Mascotas, deps.FileStorage, deps.Logger),
		Citas:         citas,
		Mantenimiento: NewMantenimientoService(deps.Repos.Citas, deps.Logger),
		Admin:         NewAdminService(deps.Repos, deps.Logger),
	}
}
