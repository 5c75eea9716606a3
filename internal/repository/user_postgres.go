package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"biosys/internal/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, email, password_hash,
	COALESCE(telefono, ''), COALESCE(direccion_calle, ''), COALESCE(direccion_ciudad, ''),
	COALESCE(direccion_estado, ''), COALESCE(direccion_pais, ''),
	role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Telefono, &user.Direccion.Calle, &user.Direccion.Ciudad,
		&user.Direccion.Estado, &user.Direccion.Pais,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUsuarioNoEncontrado
		}
		return nil, fmt.Errorf("error al escanear el usuario: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password_hash, telefono,
			direccion_calle, direccion_ciudad, direccion_estado, direccion_pais,
			role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Telefono,
		user.Direccion.Calle, user.Direccion.Ciudad, user.Direccion.Estado, user.Direccion.Pais,
		user.Role, user.IsActive, now, now,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrEmailEnUso
		}
		return 0, fmt.Errorf("error al crear el usuario: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			name = $1, telefono = $2,
			direccion_calle = $3, direccion_ciudad = $4,
			direccion_estado = $5, direccion_pais = $6,
			is_active = $7, updated_at = $8
		WHERE id = $9
	`

	tag, err := r.db.Exec(ctx, query,
		user.Name, user.Telefono,
		user.Direccion.Calle, user.Direccion.Ciudad,
		user.Direccion.Estado, user.Direccion.Pais,
		user.IsActive, time.Now(), user.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar el usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUsuarioNoEncontrado
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC", userColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error al listar los usuarios: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error al contar los usuarios: %w", err)
	}
	return count, nil
}
