package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"biosys/config"
	"biosys/internal/domain"
	"biosys/internal/repository"
	"biosys/pkg/validator"
)

type AuthService struct {
	users    repository.Users
	sessions repository.Sessions
	cfg      config.JWTConfig
	logger   *zap.Logger
}

func NewAuthService(users repository.Users, sessions repository.Sessions, cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterUserInput) (int64, error) {
	if !validator.ValidateEmail(input.Email) {
		return 0, fmt.Errorf("%w: correo electrónico inválido", domain.ErrCredenciales)
	}
	if !validator.ValidatePassword(input.Password) {
		return 0, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrCredenciales)
	}
	if input.Telefono != "" && !validator.ValidatePhone(input.Telefono) {
		return 0, fmt.Errorf("%w: teléfono inválido", domain.ErrCredenciales)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("error al generar el hash de la contraseña: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Telefono:     validator.FormatPhone(input.Telefono),
		Direccion:    input.Direccion,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if user.Direccion.Pais == "" {
		user.Direccion.Pais = "Colombia"
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return 0, err
	}

	s.logger.Info("usuario registrado", zap.Int64("user_id", id), zap.String("email", input.Email))

	return id, nil
}

func (s *AuthService) Login(ctx context.Context, input domain.LoginInput, userAgent, ip string) (*domain.User, domain.Tokens, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNoEncontrado) {
			return nil, domain.Tokens{}, domain.ErrCredenciales
		}
		return nil, domain.Tokens{}, err
	}

	if !user.IsActive {
		return nil, domain.Tokens{}, domain.ErrNoAutorizado
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.Tokens{}, domain.ErrCredenciales
	}

	tokens, err := s.createSession(ctx, user, userAgent, ip)
	if err != nil {
		return nil, domain.Tokens{}, err
	}

	s.logger.Info("sesión iniciada", zap.Int64("user_id", user.ID))

	return user, tokens, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken, userAgent, ip string) (domain.Tokens, error) {
	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return domain.Tokens{}, err
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return domain.Tokens{}, err
	}

	if session.Expirada() {
		return domain.Tokens{}, domain.ErrSesionExpirada
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return domain.Tokens{}, err
	}
	if !user.IsActive {
		return domain.Tokens{}, domain.ErrNoAutorizado
	}

	return s.createSession(ctx, user, userAgent, ip)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSesionExpirada) {
			return nil
		}
		return err
	}

	return s.sessions.Delete(ctx, session.ID)
}

func (s *AuthService) createSession(ctx context.Context, user *domain.User, userAgent, ip string) (domain.Tokens, error) {
	accessToken, err := s.newAccessToken(user)
	if err != nil {
		return domain.Tokens{}, err
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return domain.Tokens{}, err
	}

	session := &domain.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.cfg.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.Tokens{}, err
	}

	return domain.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) newAccessToken(user *domain.User) (string, error) {
	claims := tokenClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		return "", fmt.Errorf("error al firmar el token: %w", err)
	}

	return signed, nil
}

func (s *AuthService) ParseToken(accessToken string) (int64, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(accessToken, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, "", domain.ErrNoAutorizado
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, "", domain.ErrNoAutorizado
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", domain.ErrNoAutorizado
	}

	return userID, domain.UserRole(claims.Role), nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error al generar el token de actualización: %w", err)
	}
	return hex.EncodeToString(b), nil
}
