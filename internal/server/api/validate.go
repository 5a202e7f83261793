package api

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// Ограничения на поля запросов.
const (
	MaxNameLen       = 100
	MaxEmailLen      = 254
	MinPasswordLen   = 6
	MaxPasswordBytes = 72 // больше bcrypt не принимает
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{serr.ErrInvalidInput}, args...)...)
}

// validateSignUp проверяет форму запроса регистрации.
func validateSignUp(req models.SignUpRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return invalid("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return invalid("name must be at most %d characters", MaxNameLen)
	}

	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if utf8.RuneCountInString(req.Password) < MinPasswordLen {
		return invalid("password must be at least %d characters", MinPasswordLen)
	}
	if len(req.Password) > MaxPasswordBytes {
		return invalid("password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}

// validateSignIn проверяет только наличие полей:
// неверный пароль любой длины должен дойти до сервиса и получить 401.
// Пароль из одних пробелов считается отсутствующим, так же как в сервисе.
func validateSignIn(req models.SignInRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return invalid("email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return invalid("password is required")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email is required")
	}
	if len(email) > MaxEmailLen {
		return invalid("email is too long")
	}
	// "Имя <a@b.c>" ParseAddress тоже разберёт, нам нужен голый адрес
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email is not valid")
	}
	return nil
}
