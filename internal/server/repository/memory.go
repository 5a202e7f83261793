package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
)

// MemoryUsersRepository — хранилище пользователей в памяти процесса (db.driver: memory).
// Подходит для локального запуска и тестов, после рестарта всё теряется.
type MemoryUsersRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID

	now func() time.Time
}

// NewMemoryUsersRepository создает пустое хранилище.
func NewMemoryUsersRepository() *MemoryUsersRepository {
	return &MemoryUsersRepository{
		byID:    make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

// Create добавляет пользователя. Проверка email и вставка идут под одной блокировкой.
func (r *MemoryUsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, serr.ErrInternal
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return models.User{}, serr.ErrAlreadyExists
	}

	u := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.now().UTC(),
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID

	return u, nil
}

func (r *MemoryUsersRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, serr.ErrInternal
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return models.User{}, serr.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (models.PublicUser, error) {
	if err := ctx.Err(); err != nil {
		return models.PublicUser{}, serr.ErrInternal
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return models.PublicUser{}, serr.ErrNotFound
	}
	return u.Public(), nil
}

// Ping всегда успешен, пока жив процесс.
func (r *MemoryUsersRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
