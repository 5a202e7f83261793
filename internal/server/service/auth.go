package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/utils"
)

// AuthService реализует аутентификацию: проверку пароля и выпуск access-токена.
type AuthService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
	jwt    crypto.JWTConfig

	// хэш-пустышка, с которым сверяем пароль, если email не найден
	dummyOnce sync.Once
	dummyHash string
}

// SignInResult — пользователь без хэша пароля и выпущенный для него токен.
type SignInResult struct {
	User  models.PublicUser
	Token string
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, hasher crypto.PasswordHasher, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt:    cfg.JWT(),
	}
}

// SignIn аутентифицирует пользователя и выдаёт access-токен.
//
// Поведение:
//   - не раскрывает факт существования email: и для неизвестного email,
//     и для неверного пароля возвращается одна и та же ErrInvalidCredentials
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
//   - ErrInternal
func (s *AuthService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return SignInResult{}, serr.ErrInvalidInput
	}

	// получаем юзера по email
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			// тратим на ответ столько же времени, сколько на проверку настоящего пароля
			s.burnVerify(password)
			return SignInResult{}, serr.ErrInvalidCredentials
		}
		return SignInResult{}, err
	}

	// проверяем пароль
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return SignInResult{}, serr.ErrInternal
	}
	if !ok {
		return SignInResult{}, serr.ErrInvalidCredentials
	}

	// создаём access токен
	token, err := crypto.NewAccessToken(user.ID.String(), s.jwt)
	if err != nil {
		return SignInResult{}, serr.ErrInternal
	}

	return SignInResult{User: user.Public(), Token: token}, nil
}

func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("accounts-dummy-password")
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
