package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/utils"
)

// AccountService создаёт пользователей и отдаёт их по id.
type AccountService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
}

// NewAccountService создаёт новый AccountService.
func NewAccountService(users UsersRepo, hasher crypto.PasswordHasher) *AccountService {
	return &AccountService{users: users, hasher: hasher}
}

// SignUp регистрирует нового пользователя.
//
// Формат полей проверяет api слой, здесь только защита от пустых значений.
// Пароль хэшируется с солью, в хранилище попадает только хэш.
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrAlreadyExists если email уже зарегистрирован
//   - ErrInternal
func (s *AccountService) SignUp(ctx context.Context, name, email, password string) (models.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return models.PublicUser{}, serr.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, crypto.ErrEmptyPassword) {
			return models.PublicUser{}, serr.ErrInvalidInput
		}
		return models.PublicUser{}, serr.ErrInternal
	}

	user, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

// GetByID возвращает пользователя без хэша пароля.
// id, который не является UUID, не может существовать, поэтому это ErrNotFound.
func (s *AccountService) GetByID(ctx context.Context, id string) (models.PublicUser, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return models.PublicUser{}, serr.ErrNotFound
	}
	return s.users.FindByID(ctx, uid)
}
