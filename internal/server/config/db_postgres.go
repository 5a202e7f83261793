// Package config содержит также открытие подключения к базе данных сервера.
//
// OpenPostgres выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - настройку пула соединений из секции db;
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-accounts/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// pingTimeout — сколько ждём ответа базы при старте.
const pingTimeout = 5 * time.Second

// OpenPostgres открывает подключение к базе данных по cfg.DSN, проверяет его
// доступность и, если включено, применяет миграции.
//
// Если миграции уже применены, migrate.ErrNoChange не считается ошибкой.
// Закрыть *sql.DB должен вызывающий.
func OpenPostgres(ctx context.Context, cfg DBConfig, mig MigrationsConfig, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// пул
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("check db connection: %w", err)
	}

	if mig.Enabled {
		if err := runMigrations(db, mig.Path); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("migrations applied successfully", zap.String("path", mig.Path))
	}

	return db, nil
}

// runMigrations применяет все up-миграции из sourceURL.
func runMigrations(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
