// Package api содержит HTTP-клиент для взаимодействия с сервером аккаунтов.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *APIError с текстом из
//     поля "error" (если тело не JSON, используется само тело или res.Status).
//
// ВНИМАНИЕ: флаг insecure в NewClient включает InsecureSkipVerify (TLS сертификат
// не проверяется). Это допустимо только для разработки и локального окружения.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// DefaultTimeout — таймаут одного запроса к серверу.
const DefaultTimeout = 10 * time.Second

// Client реализует HTTP-клиент для общения с сервером.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client (таймаут, транспорт, TLS).
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:8080").
//   - insecure: отключить проверку TLS сертификата (только для dev).
func NewClient(baseURL string, insecure bool) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // только для dev
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: tr,
		},
	}
}

// APIError — ошибка, которую вернул сервер (любой не 2xx ответ).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Unwrap сопоставляет HTTP-статус с общей доменной ошибкой,
// чтобы вызывающий мог использовать errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return serr.ErrInvalidInput
	case http.StatusUnauthorized:
		return serr.ErrUnauthorized
	case http.StatusNotFound:
		return serr.ErrNotFound
	case http.StatusConflict:
		return serr.ErrAlreadyExists
	case http.StatusTooManyRequests:
		return serr.ErrTooManyRequests
	case http.StatusServiceUnavailable:
		return serr.ErrUnavailable
	default:
		return serr.ErrInternal
	}
}

// readAPIError читает тело ошибочного ответа и собирает *APIError.
//
// Поведение:
//   - если тело — JSON вида {"error": "..."}, берётся текст из поля error;
//   - если тело непустое, но не JSON, берётся тело целиком (trim пробелов);
//   - если тело пустое, используется res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)
	msg := strings.TrimSpace(string(raw))

	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = res.Status
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil, функция ничего не делает.
// Пустое тело (io.EOF) не считается ошибкой.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do выполняет запрос method к path, сериализуя req в JSON (если req != nil)
// и декодируя ответ в resp (если resp != nil).
//
// Если authToken непустой, добавляется заголовок Authorization: Bearer <token>.
func (c *Client) do(ctx context.Context, method, path string, req, resp any, authToken string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST-запрос к серверу, сериализуя req в JSON.
//
// Если req == nil, тело не отправляется и Content-Type не устанавливается.
// Если resp == nil, тело ответа не декодируется.
func (c *Client) PostJSON(ctx context.Context, path string, req, resp any, authToken string) error {
	return c.do(ctx, http.MethodPost, path, req, resp, authToken)
}

// GetJSON выполняет GET-запрос к серверу и (опционально) декодирует JSON-ответ.
func (c *Client) GetJSON(ctx context.Context, path string, resp any, authToken string) error {
	return c.do(ctx, http.MethodGet, path, nil, resp, authToken)
}
