package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"toolkeep/internal/domain"
	"toolkeep/internal/repository"
)

// UserService coordina registro y verificación de credenciales.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
)

func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.PublicUser, error) {
	if s.users == nil {
		return domain.PublicUser{}, errors.New("user service not configured")
	}

	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.PublicUser{}, ErrInvalidEmail
	}
	password := strings.TrimSpace(input.Password)
	if password == "" {
		return domain.PublicUser{}, ErrInvalidCredentials
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.PublicUser{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hashBytes),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return domain.PublicUser{}, ErrEmailTaken
		}
		return domain.PublicUser{}, err
	}

	if s.logger != nil {
		s.logger.Info("user registered", zap.String("user_id", user.ID))
	}
	return user.Public(), nil
}

// Authenticate devuelve el mismo error para email desconocido y para
// contraseña incorrecta, sin señal de enumeración de cuentas.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.PublicUser, error) {
	if s.users == nil {
		return domain.PublicUser{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.PublicUser{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.PublicUser{}, ErrInvalidCredentials
		}
		return domain.PublicUser{}, err
	}
	if user.PasswordHash == "" {
		return domain.PublicUser{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.PublicUser{}, ErrInvalidCredentials
	}
	return user.Public(), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.PublicUser, error) {
	if s.users == nil {
		return domain.PublicUser{}, errors.New("user service not configured")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.PublicUser{}, ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
