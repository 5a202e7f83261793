package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/logger"
)

// RateStore считает запросы в окне фиксированной длины.
// Hit увеличивает счётчик key и возвращает новое значение и время до сброса окна.
type RateStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, reset time.Duration, err error)
}

// RedisRateStore — счётчики в redis: INCR, на первом запросе окна ставится EXPIRE.
type RedisRateStore struct {
	rdb redis.UniversalClient
}

func NewRedisRateStore(rdb redis.UniversalClient) *RedisRateStore {
	return &RedisRateStore{rdb: rdb}
}

func (s *RedisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		return count, window, nil
	}

	ttl, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	// ключ без TTL (EXPIRE потерялся) — чиним, иначе окно никогда не сбросится
	if ttl < 0 {
		_ = s.rdb.Expire(ctx, key, window).Err()
		ttl = window
	}
	return count, ttl, nil
}

// RateLimitOptions — параметры лимита.
type RateLimitOptions struct {
	Requests  int
	Window    time.Duration
	KeyPrefix string
}

// RateLimit ограничивает число запросов с одного IP.
//
// При превышении отвечает 429 с заголовком Retry-After.
// Если хранилище счётчиков недоступно, запрос пропускается (fail open).
func RateLimit(store RateStore, opts RateLimitOptions, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyPrefix + ":ip:" + ClientIP(r)

			count, reset, err := store.Hit(r.Context(), key, opts.Window)
			if err != nil {
				log.Warn("rate limit store unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			remaining := opts.Requests - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.Requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > int64(opts.Requests) {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(reset)))
				writeError(w, http.StatusTooManyRequests, serr.ErrTooManyRequests.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP возвращает IP клиента без порта.
//
// Заголовки прокси здесь не читаются: за доверенным прокси роутер ставит
// chi RealIP, который уже переписал r.RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP кладёт адрес без порта
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}
