// @title           Accounts API
// @version         1.0
// @description     Minimal user accounts service.
// @description     Provides sign up, sign in (JWT) and user lookup by id.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения accounts.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - выбор хранилища пользователей (postgres или memory) и миграции;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - настройку и запуск сервера с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/api"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-accounts/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/repository"
	"github.com/IvanChernomyrdin/go-accounts/internal/server/service"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-accounts/swagger/docs"
)

const configPath = "./configs/server.yaml"

// usersStore — то, что сервер ждёт от хранилища пользователей.
type usersStore interface {
	service.UsersRepo
	service.HealthRepo
}

func main() {
	// до загрузки конфига пишем в stdout
	sugar := logger.NewDefault().Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		sugar.Fatal(err)
	}

	log, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		sugar.Fatal(err)
	}
	defer log.Sync()

	// создаём контекст, который отменится по сигналу
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// создаём хранилище
	var users usersStore
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory users storage, data is lost on restart")
		users = repository.NewMemoryUsersRepository()
	default:
		db, err := config.OpenPostgres(ctx, cfg.DB, cfg.Migrations, log)
		if err != nil {
			log.Fatal("open database", zap.Error(err))
		}
		// делаем отложенное закрытие бд
		defer db.Close()
		users = repository.NewUsersRepository(db, cfg.DB.QueryTimeout)
	}

	// создаём сервисы
	svc, err := service.NewServices(service.Repositories{Users: users, Health: users}, cfg)
	if err != nil {
		log.Fatal("create services", zap.Error(err))
	}

	// создаём jwt верификатор и хандлер
	verifier := middleware.NewJWTVerifier(cfg.JWT())
	handler := api.NewHandler(svc, log, verifier)

	routerOpts := h.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		TrustProxy:     cfg.Server.TrustProxy,
	}
	if rl := cfg.Security.RateLimit; rl.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: rl.RedisAddr, DB: rl.RedisDB})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			// лимитер fail open, поэтому сервер всё равно стартует
			log.Warn("redis is not reachable, rate limit is effectively off", zap.Error(err))
		}
		routerOpts.RateStore = middleware.NewRedisRateStore(rdb)
		routerOpts.RateLimit = middleware.RateLimitOptions{
			Requests:  rl.Requests,
			Window:    rl.Window,
			KeyPrefix: rl.KeyPrefix,
		}
	}

	// создаём роутер и сервер
	router := h.NewRouter(handler, routerOpts)
	addr := cfg.Addr()

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		log.Info("server started", zap.String("addr", addr), zap.Bool("tls", cfg.TLS.Enabled), zap.String("storage", cfg.DB.Driver))

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
