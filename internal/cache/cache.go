// Package cache define una caché opcional para la grilla de horarios
// disponibles por fecha. Cuando Redis no está configurado se usa una
// implementación nula y todas las consultas van a la base de datos.
package cache

import (
	"context"
	"time"

	"biosys/internal/calendar"
)

type HorariosCache interface {
	Get(ctx context.Context, fecha time.Time) ([]calendar.Horario, bool)
	Set(ctx context.Context, fecha time.Time, horarios []calendar.Horario)
	Invalidate(ctx context.Context, fecha time.Time)
}

type noopCache struct{}

func NewNoop() HorariosCache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, fecha time.Time) ([]calendar.Horario, bool) {
	return nil, false
}

func (noopCache) Set(ctx context.Context, fecha time.Time, horarios []calendar.Horario) {}

func (noopCache) Invalidate(ctx context.Context, fecha time.Time) {}
