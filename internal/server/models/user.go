// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"

	shared "github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// User — полная запись пользователя, как она лежит в хранилище.
// PasswordHash нужен только для проверки пароля и наружу не отдаётся.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser — пользователь без хэша пароля.
type PublicUser struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// Public отрезает хэш пароля.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// DTO переводит пользователя в модель HTTP API.
func (u PublicUser) DTO() shared.User {
	return shared.User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}
