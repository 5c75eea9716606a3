package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"biosys/internal/calendar"
	"biosys/internal/domain"
	"biosys/internal/repository"
	"biosys/internal/storage"
)

type MascotaService struct {
	repo    repository.Mascotas
	storage storage.FileStorage
	logger  *zap.Logger
}

func NewMascotaService(repo repository.Mascotas, fileStorage storage.FileStorage, logger *zap.Logger) *MascotaService {
	return &MascotaService{
		repo:    repo,
		storage: fileStorage,
		logger:  logger,
	}
}

func (s *MascotaService) Create(ctx context.Context, usuarioID int64, input domain.CreateMascotaInput) (*domain.Mascota, error) {
	mascota := &domain.Mascota{
		Nombre:       input.Nombre,
		Especie:      input.Especie,
		Raza:         input.Raza,
		Edad:         input.Edad,
		Genero:       input.Genero,
		Estado:       input.Estado,
		Enfermedades: input.Enfermedades,
		Historial:    input.Historial,
		UsuarioID:    usuarioID,
	}

	id, err := s.repo.Create(ctx, mascota)
	if err != nil {
		return nil, err
	}

	s.logger.Info("mascota registrada",
		zap.Int64("mascota_id", id),
		zap.Int64("usuario_id", usuarioID),
	)

	return s.repo.GetByID(ctx, id)
}

// autorizada devuelve la mascota si pertenece al usuario o si quien
// consulta es administrador.
func (s *MascotaService) autorizada(ctx context.Context, usuarioID int64, esAdmin bool, id int64) (*domain.Mascota, error) {
	mascota, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !esAdmin && mascota.UsuarioID != usuarioID {
		return nil, domain.ErrNoAutorizado
	}
	return mascota, nil
}

func (s *MascotaService) GetByID(ctx context.Context, usuarioID int64, esAdmin bool, id int64) (*domain.Mascota, error) {
	return s.autorizada(ctx, usuarioID, esAdmin, id)
}

func (s *MascotaService) List(ctx context.Context, usuarioID int64, esAdmin bool) ([]domain.Mascota, error) {
	if esAdmin {
		return s.repo.List(ctx)
	}
	return s.repo.ListByUsuario(ctx, usuarioID)
}

func (s *MascotaService) Update(ctx context.Context, usuarioID int64, esAdmin bool, id int64, input domain.UpdateMascotaInput) (*domain.Mascota, error) {
	mascota, err := s.autorizada(ctx, usuarioID, esAdmin, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		mascota.Nombre = *input.Nombre
	}
	if input.Especie != nil {
		mascota.Especie = *input.Especie
	}
	if input.Raza != nil {
		mascota.Raza = *input.Raza
	}
	if input.Edad != nil {
		mascota.Edad = *input.Edad
	}
	if input.Genero != nil {
		mascota.Genero = *input.Genero
	}
	if input.Estado != nil {
		mascota.Estado = *input.Estado
	}
	if input.Enfermedades != nil {
		mascota.Enfermedades = *input.Enfermedades
	}
	if input.Historial != nil {
		mascota.Historial = *input.Historial
	}

	if err := s.repo.Update(ctx, mascota); err != nil {
		return nil, err
	}

	return mascota, nil
}

func (s *MascotaService) Delete(ctx context.Context, usuarioID int64, esAdmin bool, id int64) error {
	mascota, err := s.autorizada(ctx, usuarioID, esAdmin, id)
	if err != nil {
		return err
	}

	if mascota.FotoURL != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, mascota.FotoURL); err != nil {
			s.logger.Warn("no se pudo eliminar la foto de la mascota",
				zap.Int64("mascota_id", id), zap.Error(err))
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *MascotaService) SubirFoto(ctx context.Context, usuarioID int64, esAdmin bool, id int64, file storage.UploadInput) (string, error) {
	mascota, err := s.autorizada(ctx, usuarioID, esAdmin, id)
	if err != nil {
		return "", err
	}

	if s.storage == nil {
		return "", domain.ErrNoEncontrada
	}

	url, err := s.storage.Upload(ctx, file)
	if err != nil {
		return "", err
	}

	if mascota.FotoURL != "" {
		if err := s.storage.Delete(ctx, mascota.FotoURL); err != nil {
			s.logger.Warn("no se pudo eliminar la foto anterior",
				zap.Int64("mascota_id", id), zap.Error(err))
		}
	}

	if err := s.repo.SetFotoURL(ctx, id, url); err != nil {
		return "", err
	}

	return url, nil
}

func (s *MascotaService) AddVacuna(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64, input domain.CreateVacunaInput, imagen *storage.UploadInput) (*domain.Vacuna, error) {
	if _, err := s.autorizada(ctx, usuarioID, esAdmin, mascotaID); err != nil {
		return nil, err
	}

	fecha, err := time.ParseInLocation(calendar.FormatoFecha, input.Fecha, time.Local)
	if err != nil {
		return nil, domain.ErrFechaInvalida
	}

	vacuna := &domain.Vacuna{
		MascotaID: mascotaID,
		Nombre:    input.Nombre,
		Fecha:     fecha,
	}

	if imagen != nil && s.storage != nil {
		url, err := s.storage.Upload(ctx, *imagen)
		if err != nil {
			return nil, err
		}
		vacuna.ImagenURL = url
	}

	id, err := s.repo.AddVacuna(ctx, vacuna)
	if err != nil {
		return nil, err
	}
	vacuna.ID = id

	return vacuna, nil
}

func (s *MascotaService) ListVacunas(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64) ([]domain.Vacuna, error) {
	if _, err := s.autorizada(ctx, usuarioID, esAdmin, mascotaID); err != nil {
		return nil, err
	}
	return s.repo.ListVacunas(ctx, mascotaID)
}

func (s *MascotaService) AddOperacion(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64, input domain.CreateOperacionInput, imagen *storage.UploadInput) (*domain.Operacion, error) {
	if _, err := s.autorizada(ctx, usuarioID, esAdmin, mascotaID); err != nil {
		return nil, err
	}

	fecha, err := time.ParseInLocation(calendar.FormatoFecha, input.Fecha, time.Local)
	if err != nil {
		return nil, domain.ErrFechaInvalida
	}

	operacion := &domain.Operacion{
		MascotaID:   mascotaID,
		Nombre:      input.Nombre,
		Fecha:       fecha,
		Descripcion: input.Descripcion,
	}

	if imagen != nil && s.storage != nil {
		url, err := s.storage.Upload(ctx, *imagen)
		if err != nil {
			return nil, err
		}
		operacion.ImagenURL = url
	}

	id, err := s.repo.AddOperacion(ctx, operacion)
	if err != nil {
		return nil, err
	}
	operacion.ID = id

	return operacion, nil
}

func (s *MascotaService) ListOperaciones(ctx context.Context, usuarioID int64, esAdmin bool, mascotaID int64) ([]domain.Operacion, error) {
	if _, err := s.autorizada(ctx, usuarioID, esAdmin, mascotaID); err != nil {
		return nil, err
	}
	return s.repo.ListOperaciones(ctx, mascotaID)
}
