package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/api"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/models"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-accounts/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/logger"
	shared "github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

type testDeps struct {
	users  *svcmocks.MockUsersRepo
	health *svcmocks.MockHealthRepo
	hasher crypto.PasswordHasher
	cfg    *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "issuer",
			Audience:  "audience",
			AccessTTL: 1 * time.Minute,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
		},
		Password: config.PasswordConfig{
			Hasher: crypto.HasherBcrypt,
			Bcrypt: config.BcryptConfig{Cost: bcrypt.MinCost},
		},
	}
}

// NewTestHandler создаёт Handler с моками и конфигом через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	deps := testDeps{
		users:  svcmocks.NewMockUsersRepo(ctrl),
		health: svcmocks.NewMockHealthRepo(ctrl),
		cfg:    testConfig(),
	}

	svc, err := service.NewServices(service.Repositories{Users: deps.users, Health: deps.health}, deps.cfg)
	require.NoError(t, err)

	deps.hasher, err = deps.cfg.PasswordHasher()
	require.NoError(t, err)

	verifier := middleware.NewJWTVerifier(deps.cfg.JWT())
	log := &logger.Logger{Logger: zaptest.NewLogger(t)}

	return api.NewHandler(svc, log, verifier), deps
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestHandler_SignUp_BadJSON(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	rec := httptest.NewRecorder()
	h.SignUp(rec, postJSON("/signup", "{bad json"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, serr.ErrBadJSON.Error(), decodeError(t, rec))
}

// Тело больше лимита
func TestHandler_SignUp_BodyTooLarge(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	body := `{"name":"` + strings.Repeat("a", 2048) + `"}`
	req := postJSON("/signup", body)
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 64)

	h.SignUp(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// Невалидные поля до сервиса не доходят (моки без ожиданий)
func TestHandler_SignUp_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty name":        `{"name":"  ","email":"a@mail.com","password":"secret1"}`,
		"long name":         `{"name":"` + strings.Repeat("я", 101) + `","email":"a@mail.com","password":"secret1"}`,
		"no email":          `{"name":"Aender","password":"secret1"}`,
		"bad email":         `{"name":"Aender","email":"not-an-email","password":"secret1"}`,
		"email with name":   `{"name":"Aender","email":"Aender <a@mail.com>","password":"secret1"}`,
		"short password":    `{"name":"Aender","email":"a@mail.com","password":"12345"}`,
		"too long password": `{"name":"Aender","email":"a@mail.com","password":"` + strings.Repeat("p", 73) + `"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			h, _ := NewTestHandler(t)

			rec := httptest.NewRecorder()
			h.SignUp(rec, postJSON("/signup", body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, decodeError(t, rec), serr.ErrInvalidInput.Error())
		})
	}
}

func TestHandler_SignUp_Created(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)

	id := uuid.New()
	deps.users.EXPECT().
		Create(gomock.Any(), "Aender", "aenderb@hotmail.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, hash string) (models.User, error) {
			require.NotEqual(t, "secret1", hash)
			return models.User{ID: id, Name: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}, nil
		})

	rec := httptest.NewRecorder()
	h.SignUp(rec, postJSON("/signup", `{"name":"Aender","email":"aenderb@hotmail.com","password":"secret1"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, api.JsonContentType, rec.Header().Get(api.ContentType))
	require.NotContains(t, rec.Body.String(), "password")

	var resp shared.UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, id.String(), resp.User.ID)
	require.Equal(t, "Aender", resp.User.Name)
	require.Equal(t, "aenderb@hotmail.com", resp.User.Email)
}

func TestHandler_SignUp_Conflict(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)

	deps.users.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, serr.ErrAlreadyExists)

	rec := httptest.NewRecorder()
	h.SignUp(rec, postJSON("/signup", `{"name":"Aender","email":"aenderb@hotmail.com","password":"secret1"}`))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, serr.ErrAlreadyExists.Error(), decodeError(t, rec))
}

// Непредвиденная ошибка наружу не уходит
func TestHandler_SignUp_InternalError(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)

	deps.users.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, serr.ErrInternal)

	rec := httptest.NewRecorder()
	h.SignUp(rec, postJSON("/signup", `{"name":"Aender","email":"aenderb@hotmail.com","password":"secret1"}`))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, serr.ErrInternal.Error(), decodeError(t, rec))
}

func TestHandler_SignIn_OK(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)

	hash, err := deps.hasher.Hash("secret1")
	require.NoError(t, err)
	user := models.User{ID: uuid.New(), Name: "Aender", Email: "aenderb@hotmail.com", PasswordHash: hash, CreatedAt: time.Now()}

	deps.users.EXPECT().FindByEmail(gomock.Any(), "aenderb@hotmail.com").Return(user, nil)

	rec := httptest.NewRecorder()
	h.SignIn(rec, postJSON("/signin", `{"email":"aenderb@hotmail.com","password":"secret1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), hash)

	var resp shared.SignInResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, user.ID.String(), resp.User.ID)

	sub, err := crypto.ParseAccessToken(resp.Token, deps.cfg.JWT())
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), sub)
}

// Неверный пароль и неизвестный email: одинаковые 401
func TestHandler_SignIn_Unauthorized(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)

	hash, err := deps.hasher.Hash("secret1")
	require.NoError(t, err)

	deps.users.EXPECT().FindByEmail(gomock.Any(), "aenderb@hotmail.com").
		Return(models.User{ID: uuid.New(), Email: "aenderb@hotmail.com", PasswordHash: hash}, nil)
	deps.users.EXPECT().FindByEmail(gomock.Any(), "nobody@hotmail.com").
		Return(models.User{}, serr.ErrNotFound)

	recWrong := httptest.NewRecorder()
	h.SignIn(recWrong, postJSON("/signin", `{"email":"aenderb@hotmail.com","password":"wrong"}`))

	recUnknown := httptest.NewRecorder()
	h.SignIn(recUnknown, postJSON("/signin", `{"email":"nobody@hotmail.com","password":"secret1"}`))

	require.Equal(t, http.StatusUnauthorized, recWrong.Code)
	require.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	require.Equal(t, recWrong.Body.String(), recUnknown.Body.String())
	require.Equal(t, "invalid email or password", decodeError(t, recWrong))
}

func TestHandler_SignIn_Validation(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	for _, body := range []string{
		`{"email":"","password":"secret1"}`,
		`{"email":"a@mail.com","password":""}`,
		`[]`,
	} {
		rec := httptest.NewRecorder()
		h.SignIn(rec, postJSON("/signin", body))
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

// Пароль из пробелов отсекается на границе, до обращения к хранилищу
func TestHandler_SignIn_WhitespacePassword(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	rec := httptest.NewRecorder()
	h.SignIn(rec, postJSON("/signin", `{"email":"a@mail.com","password":"   "}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeError(t, rec), "password is required")
}
