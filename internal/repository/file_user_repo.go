package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"toolkeep/internal/domain"
)

const userStoreVersion = "1"

type userStoreDocument struct {
	Version string       `json:"version"`
	Users   []userRecord `json:"users"`
}

// userRecord es la forma persistida; a diferencia de domain.User incluye
// el hash, porque el archivo es el único lugar donde debe vivir.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

var errEmptyStorePath = errors.New("repository: users file path is empty")

// FileUserRepository implementa UserRepository sobre un único archivo JSON.
// Cada operación relee el archivo completo y cada mutación lo reescribe
// entero, para tolerar cambios externos entre llamadas; el mutex serializa
// los accesos dentro del proceso.
type FileUserRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileUserRepository crea el repositorio y garantiza que el archivo
// exista con un conjunto vacío si estaba ausente.
func NewFileUserRepository(path string) (*FileUserRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errEmptyStorePath
	}
	r := &FileUserRepository{path: path}

	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	if err := r.save(users); err != nil {
		return nil, err
	}
	return r, nil
}

// Path devuelve la ruta del archivo de respaldo.
func (r *FileUserRepository) Path() string {
	return r.path
}

func (r *FileUserRepository) Create(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, rec := range users {
		if strings.ToLower(rec.Email) == email {
			return ErrEmailTaken
		}
	}

	users = append(users, userRecord{
		ID:           user.ID,
		Email:        email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		CreatedAt:    user.CreatedAt,
	})
	return r.save(users)
}

func (r *FileUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return domain.User{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, rec := range users {
		if strings.ToLower(rec.Email) == email {
			return rec.toUser(), nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (r *FileUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return domain.User{}, err
	}

	for _, rec := range users {
		if rec.ID == id {
			return rec.toUser(), nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (r *FileUserRepository) load() ([]userRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []userRecord{}, nil
		}
		return nil, fmt.Errorf("repository: read users file: %w", err)
	}
	if len(data) == 0 {
		return []userRecord{}, nil
	}

	var doc userStoreDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("repository: decode users file: %w", err)
	}
	if doc.Users == nil {
		return []userRecord{}, nil
	}
	return doc.Users, nil
}

func (r *FileUserRepository) save(users []userRecord) error {
	doc := userStoreDocument{Version: userStoreVersion, Users: users}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("repository: encode users file: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("repository: create users dir: %w", err)
		}
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("repository: write users file: %w", err)
	}
	return nil
}

func (rec userRecord) toUser() domain.User {
	return domain.User{
		ID:           rec.ID,
		Email:        rec.Email,
		Name:         rec.Name,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}
}
