// HTTP-хендлеры регистрации и входа
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// SignUp обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна, в теле пользователь без хэша пароля;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 409 Conflict: email уже зарегистрирован;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Sign up
// @Description  Creates a new account. Password is stored hashed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.SignUpRequest true "Sign up request"
// @Success      201 {object} models.UserResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} models.ErrorResponse "Email already registered"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /signup [post]
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateSignUp(req); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.Svc.Accounts.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, "signup", err)
		return
	}

	WriteJSON(w, http.StatusCreated, models.UserResponse{User: user.DTO()})
}

// SignIn обрабатывает вход пользователя и выдачу access-токена.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или пустые поля;
//   - 401 Unauthorized: неверный email или пароль (сообщение одно и то же);
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Sign in
// @Description  Verifies credentials and issues a signed access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.SignInRequest true "Sign in request"
// @Success      200 {object} models.SignInResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Invalid email or password"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /signin [post]
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateSignIn(req); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.Svc.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, "signin", err)
		return
	}

	WriteJSON(w, http.StatusOK, models.SignInResponse{
		User:  res.User.DTO(),
		Token: res.Token,
	})
}
