package repository

import (
	"context"
	"errors"

	"toolkeep/internal/domain"
)

var (
	// ErrNotFound indica que no existe registro para la clave consultada.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken indica que el email normalizado ya está registrado.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}
