// В этом файле описаны методы клиента для работы с эндпоинтами аккаунтов:
// регистрация, вход, получение пользователя по id и текущего пользователя.
package api

import (
	"context"
	"net/url"

	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// SignUp регистрирует пользователя на сервере.
//
// Метод отправляет POST запрос на /signup и возвращает созданного пользователя.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (models.User, error) {
	var resp models.UserResponse
	err := c.PostJSON(ctx, "/signup", models.SignUpRequest{Name: name, Email: email, Password: password}, &resp, "")
	return resp.User, err
}

// SignIn выполняет вход и получает подписанный JWT.
//
// В случае ошибки возвращает непустую ошибку и пустой ответ.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.SignInResponse, error) {
	var resp models.SignInResponse
	if err := c.PostJSON(ctx, "/signin", models.SignInRequest{Email: email, Password: password}, &resp, ""); err != nil {
		return models.SignInResponse{}, err
	}
	return resp, nil
}

// GetUser запрашивает публичный профиль пользователя по id.
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var resp models.UserResponse
	err := c.GetJSON(ctx, "/"+url.PathEscape(id), &resp, "")
	return resp.User, err
}

// Me запрашивает профиль пользователя, которому принадлежит token.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	var resp models.UserResponse
	err := c.GetJSON(ctx, "/me", &resp, token)
	return resp.User, err
}

// Health проверяет доступность сервера.
func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	var resp models.HealthResponse
	err := c.GetJSON(ctx, "/health", &resp, "")
	return resp, err
}
