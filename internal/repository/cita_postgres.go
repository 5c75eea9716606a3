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

type CitaRepo struct {
	db *pgxpool.Pool
}

func NewCitaRepo(db *pgxpool.Pool) *CitaRepo {
	return &CitaRepo{db: db}
}

const citaColumns = `c.id, c.mascota_id, c.usuario_id, c.tipo, c.fecha, c.hora,
	c.motivo, c.estado, COALESCE(c.notas, ''), c.created_at, c.updated_at,
	m.nombre, m.especie, COALESCE(m.raza, ''),
	u.name, u.email, COALESCE(u.telefono, '')`

const citaJoins = `FROM citas c
	JOIN mascotas m ON m.id = c.mascota_id
	JOIN users u ON u.id = c.usuario_id`

func scanCita(row pgx.Row) (*domain.Cita, error) {
	var c domain.Cita
	err := row.Scan(
		&c.ID, &c.MascotaID, &c.UsuarioID, &c.Tipo, &c.Fecha, &c.Hora,
		&c.Motivo, &c.Estado, &c.Notas, &c.CreatedAt, &c.UpdatedAt,
		&c.MascotaNombre, &c.MascotaEspecie, &c.MascotaRaza,
		&c.UsuarioNombre, &c.UsuarioEmail, &c.UsuarioTelefono,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoEncontrada
		}
		return nil, fmt.Errorf("error al escanear la cita: %w", err)
	}
	return &c, nil
}

// Create inserta la cita dentro de una transacción, verificando primero
// que el horario esté libre. El índice único sobre (fecha, hora) actúa
// como respaldo ante inserciones concurrentes.
func (r *CitaRepo) Create(ctx context.Context, cita *domain.Cita) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM citas WHERE fecha = $1 AND hora = $2)",
		cita.Fecha, cita.Hora,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("error al verificar la disponibilidad: %w", err)
	}
	if exists {
		return 0, domain.ErrHorarioOcupado
	}

	query := `
		INSERT INTO citas (mascota_id, usuario_id, tipo, fecha, hora, motivo, estado, notas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err = tx.QueryRow(ctx, query,
		cita.MascotaID, cita.UsuarioID, cita.Tipo, cita.Fecha, cita.Hora,
		cita.Motivo, cita.Estado, cita.Notas, now, now,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrHorarioOcupado
		}
		return 0, fmt.Errorf("error al crear la cita: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error al confirmar la transacción: %w", err)
	}

	return id, nil
}

func (r *CitaRepo) GetByID(ctx context.Context, id int64) (*domain.Cita, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE c.id = $1", citaColumns, citaJoins)
	return scanCita(r.db.QueryRow(ctx, query, id))
}

func (r *CitaRepo) List(ctx context.Context, filter domain.CitaFilter) ([]domain.Cita, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE 1=1", citaColumns, citaJoins)
	args := []interface{}{}
	argID := 1

	if filter.Fecha != nil {
		query += fmt.Sprintf(" AND c.fecha = $%d", argID)
		args = append(args, *filter.Fecha)
		argID++
	}
	if filter.Estado != "" {
		query += fmt.Sprintf(" AND c.estado = $%d", argID)
		args = append(args, filter.Estado)
		argID++
	}
	if filter.Tipo != "" {
		query += fmt.Sprintf(" AND c.tipo = $%d", argID)
		args = append(args, filter.Tipo)
		argID++
	}
	if filter.UsuarioID != 0 {
		query += fmt.Sprintf(" AND c.usuario_id = $%d", argID)
		args = append(args, filter.UsuarioID)
		argID++
	}

	query += " ORDER BY c.fecha ASC, c.hora ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al listar las citas: %w", err)
	}
	defer rows.Close()

	var citas []domain.Cita
	for rows.Next() {
		c, err := scanCita(rows)
		if err != nil {
			return nil, err
		}
		citas = append(citas, *c)
	}

	return citas, rows.Err()
}

// Update reescribe los campos editables de la cita. Si la fecha u hora
// cambian, verifica dentro de la misma transacción que el nuevo horario
// no esté tomado por otra cita.
func (r *CitaRepo) Update(ctx context.Context, cita *domain.Cita) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM citas WHERE fecha = $1 AND hora = $2 AND id <> $3)",
		cita.Fecha, cita.Hora, cita.ID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error al verificar la disponibilidad: %w", err)
	}
	if exists {
		return domain.ErrHorarioOcupado
	}

	query := `
		UPDATE citas SET
			mascota_id = $1, tipo = $2, fecha = $3, hora = $4,
			motivo = $5, estado = $6, notas = $7, updated_at = $8
		WHERE id = $9
	`

	tag, err := tx.Exec(ctx, query,
		cita.MascotaID, cita.Tipo, cita.Fecha, cita.Hora,
		cita.Motivo, cita.Estado, cita.Notas, time.Now(), cita.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrHorarioOcupado
		}
		return fmt.Errorf("error al actualizar la cita: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrada
	}

	return tx.Commit(ctx)
}

func (r *CitaRepo) UpdateEstado(ctx context.Context, id int64, estado domain.EstadoCita) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE citas SET estado = $1, updated_at = $2 WHERE id = $3",
		estado, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar el estado de la cita: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrada
	}
	return nil
}

func (r *CitaRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM citas WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error al eliminar la cita: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrada
	}
	return nil
}

func (r *CitaRepo) HorasOcupadas(ctx context.Context, fecha time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT hora FROM citas WHERE fecha = $1", fecha)
	if err != nil {
		return nil, fmt.Errorf("error al consultar las horas ocupadas: %w", err)
	}
	defer rows.Close()

	var horas []string
	for rows.Next() {
		var hora string
		if err := rows.Scan(&hora); err != nil {
			return nil, fmt.Errorf("error al escanear la hora: %w", err)
		}
		horas = append(horas, hora)
	}

	return horas, rows.Err()
}

const vencidasPredicate = `estado IN ('pendiente', 'confirmada')
	AND (fecha < $1 OR (fecha = $1 AND hora < $2))`

// ActualizarVencidas marca como completadas las citas pendientes o
// confirmadas cuya fecha y hora ya pasaron.
func (r *CitaRepo) ActualizarVencidas(ctx context.Context, hoy time.Time, horaActual string) (int64, error) {
	query := fmt.Sprintf(
		"UPDATE citas SET estado = 'completada', updated_at = $3 WHERE %s",
		vencidasPredicate,
	)

	tag, err := r.db.Exec(ctx, query, hoy, horaActual, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error al actualizar las citas vencidas: %w", err)
	}

	return tag.RowsAffected(), nil
}

const eliminablesPredicate = `estado IN ('completada', 'cancelada') AND fecha <= $1`

// EliminarAntiguas borra las citas completadas o canceladas con fecha
// anterior o igual al límite de retención.
func (r *CitaRepo) EliminarAntiguas(ctx context.Context, limite time.Time) (int64, error) {
	query := fmt.Sprintf("DELETE FROM citas WHERE %s", eliminablesPredicate)

	tag, err := r.db.Exec(ctx, query, limite)
	if err != nil {
		return 0, fmt.Errorf("error al eliminar las citas antiguas: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *CitaRepo) ContarPorEstado(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, "SELECT estado, COUNT(*) FROM citas GROUP BY estado")
	if err != nil {
		return nil, fmt.Errorf("error al contar las citas por estado: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var estado string
		var count int64
		if err := rows.Scan(&estado, &count); err != nil {
			return nil, fmt.Errorf("error al escanear el conteo: %w", err)
		}
		counts[estado] = count
	}

	return counts, rows.Err()
}

func (r *CitaRepo) ContarVencidas(ctx context.Context, hoy time.Time, horaActual string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM citas WHERE %s", vencidasPredicate)

	var count int64
	if err := r.db.QueryRow(ctx, query, hoy, horaActual).Scan(&count); err != nil {
		return 0, fmt.Errorf("error al contar las citas vencidas: %w", err)
	}
	return count, nil
}

func (r *CitaRepo) ContarElegiblesEliminacion(ctx context.Context, limite time.Time) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM citas WHERE %s", eliminablesPredicate)

	var count int64
	if err := r.db.QueryRow(ctx, query, limite).Scan(&count); err != nil {
		return 0, fmt.Errorf("error al contar las citas eliminables: %w", err)
	}
	return count, nil
}

func (r *CitaRepo) ContarTotal(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM citas").Scan(&count); err != nil {
		return 0, fmt.Errorf("error al contar las citas: %w", err)
	}
	return count, nil
}

func (r *CitaRepo) ContarHoy(ctx context.Context, hoy time.Time) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM citas WHERE fecha = $1", hoy).Scan(&count); err != nil {
		return 0, fmt.Errorf("error al contar las citas de hoy: %w", err)
	}
	return count, nil
}

func (r *CitaRepo) EstadisticasMensuales(ctx context.Context, inicio, fin time.Time) ([]domain.EstadisticaMensual, error) {
	query := `
		SELECT to_char(fecha, 'YYYY-MM') AS mes, COUNT(*)
		FROM citas
		WHERE fecha >= $1 AND fecha <= $2
		GROUP BY mes
		ORDER BY mes
	`

	rows, err := r.db.Query(ctx, query, inicio, fin)
	if err != nil {
		return nil, fmt.Errorf("error al consultar las estadísticas mensuales: %w", err)
	}
	defer rows.Close()

	var stats []domain.EstadisticaMensual
	for rows.Next() {
		var s domain.EstadisticaMensual
		if err := rows.Scan(&s.Mes, &s.Total); err != nil {
			return nil, fmt.Errorf("error al escanear la estadística: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

func (r *CitaRepo) EstadisticasDiarias(ctx context.Context, inicio, fin time.Time) ([]domain.EstadisticaDiaria, error) {
	query := `
		SELECT to_char(fecha, 'YYYY-MM-DD') AS dia, estado, COUNT(*)
		FROM citas
		WHERE fecha >= $1 AND fecha <= $2
		GROUP BY dia, estado
		ORDER BY dia, estado
	`

	rows, err := r.db.Query(ctx, query, inicio, fin)
	if err != nil {
		return nil, fmt.Errorf("error al consultar las estadísticas diarias: %w", err)
	}
	defer rows.Close()

	var stats []domain.EstadisticaDiaria
	for rows.Next() {
		var s domain.EstadisticaDiaria
		if err := rows.Scan(&s.Fecha, &s.Estado, &s.Total); err != nil {
			return nil, fmt.Errorf("error al escanear la estadística: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
