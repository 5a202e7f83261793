// Package http реализует маршрутизацию HTTP-слоя сервера accounts.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - CORS, лимит размера тела и rate limit;
//   - проверку JWT access-токенов для защищённых путей.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/api"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/middleware"
)

// Options — настройки роутера, которые приходят из конфига.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	// TrustProxy — брать IP клиента из X-Forwarded-For / X-Real-IP (chi RealIP)
	TrustProxy bool

	// RateStore == nil — rate limit выключен
	RateStore middleware.RateStore
	RateLimit middleware.RateLimitOptions
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования, recover и CORS для всех запросов;
//   - swagger и health-check;
//   - публичные /signup, /signin, /{id} (под rate limit, если он включён);
//   - защищённый JWT путь /me.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if opts.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(opts.MaxBodyBytes))
	}

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		if opts.RateStore != nil {
			r.Use(middleware.RateLimit(opts.RateStore, opts.RateLimit, h.Log))
		}

		// Публичные пути
		r.Post("/signup", h.SignUp)
		r.Post("/signin", h.SignIn)

		// защищённые пути
		r.Group(func(r chi.Router) {
			// проверка access токена
			r.Use(h.Verifier.AuthMiddleware())
			r.Get("/me", h.Me)
		})

		r.Get("/{id}", h.GetUser)
	})

	return r
}
