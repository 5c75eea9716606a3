package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"biosys/internal/domain"
)

type MascotaRepo struct {
	db *pgxpool.Pool
}

func NewMascotaRepo(db *pgxpool.Pool) *MascotaRepo {
	return &MascotaRepo{db: db}
}

const mascotaColumns = `id, nombre, especie, COALESCE(raza, ''), edad, genero,
	COALESCE(estado, ''), COALESCE(enfermedades, ''), COALESCE(historial, ''),
	COALESCE(foto_url, ''), usuario_id, created_at, updated_at`

func scanMascota(row pgx.Row) (*domain.Mascota, error) {
	var m domain.Mascota
	err := row.Scan(
		&m.ID, &m.Nombre, &m.Especie, &m.Raza, &m.Edad, &m.Genero,
		&m.Estado, &m.Enfermedades, &m.Historial,
		&m.FotoURL, &m.UsuarioID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMascotaNoEncontrada
		}
		return nil, fmt.Errorf("error al escanear la mascota: %w", err)
	}
	return &m, nil
}

func (r *MascotaRepo) Create(ctx context.Context, mascota *domain.Mascota) (int64, error) {
	query := `
		INSERT INTO mascotas (nombre, especie, raza, edad, genero, estado,
			enfermedades, historial, usuario_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(ctx, query,
		mascota.Nombre, mascota.Especie, mascota.Raza, mascota.Edad, mascota.Genero,
		mascota.Estado, mascota.Enfermedades, mascota.Historial, mascota.UsuarioID, now, now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error al crear la mascota: %w", err)
	}

	return id, nil
}

func (r *MascotaRepo) GetByID(ctx context.Context, id int64) (*domain.Mascota, error) {
	query := fmt.Sprintf("SELECT %s FROM mascotas WHERE id = $1", mascotaColumns)
	return scanMascota(r.db.QueryRow(ctx, query, id))
}

func (r *MascotaRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]domain.Mascota, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM mascotas WHERE usuario_id = $1 ORDER BY created_at DESC",
		mascotaColumns,
	)

	rows, err := r.db.Query(ctx, query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("error al listar las mascotas: %w", err)
	}
	defer rows.Close()

	return collectMascotas(rows)
}

func (r *MascotaRepo) List(ctx context.Context) ([]domain.Mascota, error) {
	query := fmt.Sprintf("SELECT %s FROM mascotas ORDER BY created_at DESC", mascotaColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error al listar las mascotas: %w", err)
	}
	defer rows.Close()

	return collectMascotas(rows)
}

func collectMascotas(rows pgx.Rows) ([]domain.Mascota, error) {
	var mascotas []domain.Mascota
	for rows.Next() {
		m, err := scanMascota(rows)
		if err != nil {
			return nil, err
		}
		mascotas = append(mascotas, *m)
	}
	return mascotas, rows.Err()
}

func (r *MascotaRepo) Update(ctx context.Context, mascota *domain.Mascota) error {
	query := `
		UPDATE mascotas SET
			nombre = $1, especie = $2, raza = $3, edad = $4, genero = $5,
			estado = $6, enfermedades = $7, historial = $8, updated_at = $9
		WHERE id = $10
	`

	tag, err := r.db.Exec(ctx, query,
		mascota.Nombre, mascota.Especie, mascota.Raza, mascota.Edad, mascota.Genero,
		mascota.Estado, mascota.Enfermedades, mascota.Historial, time.Now(), mascota.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar la mascota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMascotaNoEncontrada
	}

	return nil
}

func (r *MascotaRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM mascotas WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error al eliminar la mascota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMascotaNoEncontrada
	}
	return nil
}

func (r *MascotaRepo) SetFotoURL(ctx context.Context, id int64, url string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE mascotas SET foto_url = $1, updated_at = $2 WHERE id = $3",
		url, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar la foto de la mascota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMascotaNoEncontrada
	}
	return nil
}

func (r *MascotaRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM mascotas").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error al contar las mascotas: %w", err)
	}
	return count, nil
}

func (r *MascotaRepo) AddVacuna(ctx context.Context, vacuna *domain.Vacuna) (int64, error) {
	query := `
		INSERT INTO vacunas (mascota_id, nombre, fecha, imagen_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		vacuna.MascotaID, vacuna.Nombre, vacuna.Fecha, vacuna.ImagenURL, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error al registrar la vacuna: %w", err)
	}

	return id, nil
}

func (r *MascotaRepo) ListVacunas(ctx context.Context, mascotaID int64) ([]domain.Vacuna, error) {
	query := `
		SELECT id, mascota_id, nombre, fecha, COALESCE(imagen_url, ''), created_at
		FROM vacunas
		WHERE mascota_id = $1
		ORDER BY fecha DESC
	`

	rows, err := r.db.Query(ctx, query, mascotaID)
	if err != nil {
		return nil, fmt.Errorf("error al listar las vacunas: %w", err)
	}
	defer rows.Close()

	var vacunas []domain.Vacuna
	for rows.Next() {
		var v domain.Vacuna
		if err := rows.Scan(&v.ID, &v.MascotaID, &v.Nombre, &v.Fecha, &v.ImagenURL, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error al escanear la vacuna: %w", err)
		}
		vacunas = append(vacunas, v)
	}

	return vacunas, rows.Err()
}

func (r *MascotaRepo) AddOperacion(ctx context.Context, operacion *domain.Operacion) (int64, error) {
	query := `
		INSERT INTO operaciones (mascota_id, nombre, fecha, descripcion, imagen_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		operacion.MascotaID, operacion.Nombre, operacion.Fecha,
		operacion.Descripcion, operacion.ImagenURL, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error al registrar la operación: %w", err)
	}

	return id, nil
}

func (r *MascotaRepo) ListOperaciones(ctx context.Context, mascotaID int64) ([]domain.Operacion, error) {
	query := `
		SELECT id, mascota_id, nombre, fecha, COALESCE(descripcion, ''), COALESCE(imagen_url, ''), created_at
		FROM operaciones
		WHERE mascota_id = $1
		ORDER BY fecha DESC
	`

	rows, err := r.db.Query(ctx, query, mascotaID)
	if err != nil {
		return nil, fmt.Errorf("error al listar las operaciones: %w", err)
	}
	defer rows.Close()

	var operaciones []domain.Operacion
	for rows.Next() {
		var o domain.Operacion
		if err := rows.Scan(&o.ID, &o.MascotaID, &o.Nombre, &o.Fecha, &o.Descripcion, &o.ImagenURL, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("error al escanear la operación: %w", err)
		}
		operaciones = append(operaciones, o)
	}

	return operaciones, rows.Err()
}
