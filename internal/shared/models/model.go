// Package models содержит модели HTTP API, общие для сервера и CLI-клиента.
package models

import "time"

// User — публичное представление пользователя в HTTP API.
//
// Хэш пароля сюда не попадает никогда, ни в одном из ответов.
//
// Поля:
//   - ID: уникальный идентификатор пользователя (UUID в виде строки)
//   - Name: имя пользователя
//   - Email: email, он же логин
//   - CreatedAt: время регистрации (серверное)
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SignUpRequest — запрос на регистрацию.
//
// Используется в:
//
//	POST /signup
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest — запрос на вход.
//
// Используется в:
//
//	POST /signin
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse — ответ с пользователем.
//
// Используется в:
//
//	POST /signup (201), GET /{id}, GET /me
type UserResponse struct {
	User User `json:"user"`
}

// SignInResponse — ответ на успешный вход: пользователь и подписанный JWT.
type SignInResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse — стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse — ответ health-check.
type HealthResponse struct {
	Status string `json:"status"`
}
