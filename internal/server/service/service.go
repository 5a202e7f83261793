// Package service содержит бизнес-логику приложения (accounts).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_repo.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Health HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Accounts *AccountService
	Health   *HealthService
}

// NewServices собирает все сервисы приложения.
// Хэшер паролей выбирается по password.hasher из конфига.
func NewServices(repos Repositories, cfg *config.Config) (*Services, error) {
	hasher, err := cfg.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	return &Services{
		Auth:     NewAuthService(repos.Users, hasher, cfg),
		Accounts: NewAccountService(repos.Users, hasher),
		Health:   NewHealthService(repos.Health),
	}, nil
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей.
//
// Реализации: repository.UsersRepository (postgres) и repository.MemoryUsersRepository.
// Ошибки: ErrAlreadyExists, ErrNotFound, ErrInternal.
type UsersRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.PublicUser, error)
}
