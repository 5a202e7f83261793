// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки создаются в service и repository слоях, пробрасываются
// наверх без изменений и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.) -> 400
	ErrInvalidInput = errors.New("invalid input")
	// Полученные JSON данные с ошибками -> 400
	ErrBadJSON = errors.New("bad json")
	// Неверный email или пароль -> 401.
	// Сообщение одинаковое для "нет такого email" и "неверный пароль".
	ErrInvalidCredentials = errors.New("invalid email or password")
	// Нет токена, токен битый или просрочен -> 401
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (email уже занят) -> 409
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден -> 404
	ErrNotFound = errors.New("not found")
	// Слишком много запросов -> 429
	ErrTooManyRequests = errors.New("too many requests")
	// Хранилище недоступно -> 503
	ErrUnavailable = errors.New("service unavailable")
	// Получена непредвиденная ошибка -> 500
	ErrInternal = errors.New("internal error")
)

// для сообщений в тестах
var (
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)
