package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/middleware"
)

const testKey = "supersecretkeysupersecretkey123456"

func jwtConfig() crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     "issuer",
		Audience:   "aud",
		SigningKey: testKey,
		AccessTTL:  time.Minute,
	}
}

// Вспомогательная функция для JWT
func makeToken(t *testing.T, key, sub, iss, aud string, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    iss,
		Audience:  []string{aud},
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func serve(v *middleware.JWTVerifier, authHeader string, next http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	v.AuthMiddleware()(next).ServeHTTP(rec, req)
	return rec
}

// Успех
func TestAuthMiddleware_OK(t *testing.T) {
	v := middleware.NewJWTVerifier(jwtConfig())

	userID := uuid.New()
	token := makeToken(t, testKey, userID.String(), "issuer", "aud", time.Now().Add(time.Minute))

	called := false
	rec := serve(v, "Bearer "+token, func(w http.ResponseWriter, r *http.Request) {
		called = true

		uid, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			t.Fatal("user id not found in context")
		}
		if uid != userID.String() {
			t.Fatalf("unexpected user id: %v", uid)
		}
		w.WriteHeader(http.StatusOK)
	})

	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}

// Токен, выпущенный crypto.NewAccessToken, проходит проверку
func TestAuthMiddleware_AcceptsIssuedToken(t *testing.T) {
	cfg := jwtConfig()
	v := middleware.NewJWTVerifier(cfg)

	token, err := crypto.NewAccessToken("user-1", cfg)
	require.NoError(t, err)

	rec := serve(v, "Bearer "+token, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	v := middleware.NewJWTVerifier(jwtConfig())
	sub := uuid.NewString()
	future := time.Now().Add(time.Minute)

	cases := map[string]string{
		"no header":     "",
		"not bearer":    "Basic abc",
		"garbage":       "Bearer not-a-jwt",
		"wrong key":     "Bearer " + makeToken(t, "anotherkeyanotherkeyanotherkey123456", sub, "issuer", "aud", future),
		"wrong issuer":  "Bearer " + makeToken(t, testKey, sub, "other", "aud", future),
		"wrong aud":     "Bearer " + makeToken(t, testKey, sub, "issuer", "other", future),
		"empty subject": "Bearer " + makeToken(t, testKey, "", "issuer", "aud", future),
		"expired":       "Bearer " + makeToken(t, testKey, sub, "issuer", "aud", time.Now().Add(-time.Minute)),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(v, header, func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not be called")
			})
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestExtractBearer(t *testing.T) {
	require.Equal(t, "abc", middleware.ExtractBearer("Bearer abc"))
	require.Equal(t, "abc", middleware.ExtractBearer("  bearer   abc  "))
	require.Equal(t, "", middleware.ExtractBearer("Bearer"))
	require.Equal(t, "", middleware.ExtractBearer("Token abc"))
	require.Equal(t, "", middleware.ExtractBearer(""))
}
