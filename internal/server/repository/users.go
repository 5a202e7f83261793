// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с хранилищем и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
)

// UsersRepository хранит пользователей в PostgreSQL (таблица users).
//
// Уникальность email обеспечивает ограничение в самой таблице,
// поэтому гонка двух одновременных регистраций с одним email
// заканчивается ErrAlreadyExists ровно у одного из вызывающих.
type UsersRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewUsersRepository создает новый UsersRepository.
// queryTimeout <= 0 означает, что таймаут на запрос не ставится.
func NewUsersRepository(db *sql.DB, queryTimeout time.Duration) *UsersRepository {
	return &UsersRepository{db: db, queryTimeout: queryTimeout}
}

func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Create добавляет пользователя.
//
// Возвращает:
//   - созданную запись (id и created_at проставляет база)
//   - ErrAlreadyExists если email занят или ErrInternal при других ошибках БД
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id, name, email, password_hash, created_at`,
		name, email, passwordHash,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// FindByEmail возвращает полную запись вместе с хэшем пароля.
// Нужна только для проверки пароля при входе.
func (r *UsersRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// FindByID возвращает пользователя без хэша пароля: колонку password_hash даже не читаем.
func (r *UsersRepository) FindByID(ctx context.Context, id uuid.UUID) (models.PublicUser, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.PublicUser
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id=$1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PublicUser{}, serr.ErrNotFound
		}
		return models.PublicUser{}, serr.ErrInternal
	}

	return u, nil
}

// Ping проверяет, что база отвечает (для /health).
func (r *UsersRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return serr.ErrUnavailable
	}
	return nil
}
