// Package api реализует HTTP-слой сервера accounts.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - валидацию тела запросов до вызова сервисов;
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.Logger
	Verifier *middleware.JWTVerifier
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.Logger, verifier *middleware.JWTVerifier) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
}

// WriteJSON пишет v в тело ответа со статусом status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, models.ErrorResponse{
		Error: err.Error(),
	})
}

// writeServiceError переводит доменную ошибку в HTTP-ответ.
// Всё, что не распознано, логируется и отдаётся клиенту как 500 без подробностей.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
	case errors.Is(err, serr.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	case errors.Is(err, serr.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
	case errors.Is(err, serr.ErrUnavailable):
		WriteError(w, http.StatusServiceUnavailable, serr.ErrUnavailable)
	default:
		h.Log.Error(op+" failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

// decodeJSON читает тело запроса в v.
// Слишком большое тело (лимит ставит роутер) отдаём как 413, остальное как bad json.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return false
		}
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return false
	}
	return true
}
