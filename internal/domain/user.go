package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Telefono     string    `json:"telefono,omitempty"`
	Direccion    Direccion `json:"direccion"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Direccion struct {
	Calle  string `json:"calle"`
	Ciudad string `json:"ciudad"`
	Estado string `json:"estado"`
	Pais   string `json:"pais"`
}

type RegisterUserInput struct {
	Name      string    `json:"nombre" binding:"required,min=2,max=100"`
	Email     string    `json:"email" binding:"required,email"`
	Password  string    `json:"password" binding:"required,min=6"`
	Telefono  string    `json:"telefono"`
	Direccion Direccion `json:"direccion"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserInput struct {
	Name      *string    `json:"nombre"`
	Telefono  *string    `json:"telefono"`
	Direccion *Direccion `json:"direccion"`
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Session struct {
	ID           uuid.UUID
	UserID       int64
	RefreshToken string
	UserAgent    string
	IP           string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

func (s *Session) Expirada() bool {
	return time.Now().After(s.ExpiresAt)
}
