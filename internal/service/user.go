package service

import (
	"context"
	"fmt"

	"biosys/internal/domain"
	"biosys/internal/repository"
	"biosys/pkg/validator"
)

type UserService struct {
	repo repository.Users
}

func NewUserService(repo repository.Users) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Telefono != nil {
		if *input.Telefono != "" && !validator.ValidatePhone(*input.Telefono) {
			return nil, fmt.Errorf("%w: teléfono inválido", domain.ErrCredenciales)
		}
		user.Telefono = validator.FormatPhone(*input.Telefono)
	}
	if input.Direccion != nil {
		if ok, msg := validator.ValidateDireccion(validator.DireccionInput{
			Calle:  input.Direccion.Calle,
			Ciudad: input.Direccion.Ciudad,
			Estado: input.Direccion.Estado,
		}); !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrCredenciales, msg)
		}
		user.Direccion = *input.Direccion
		if user.Direccion.Pais == "" {
			user.Direccion.Pais = "Colombia"
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}
