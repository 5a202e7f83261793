// Логирование HTTP-запросов
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-accounts/internal/shared/logger"
)

// LoggerMiddleware пишет в log метод, URI, статус, размер ответа и время обработки в мс.
//
// Если перед ним в цепочке стоит chi RequestID, в запись добавляется request_id.
// Тело запроса и заголовки (в том числе Authorization) не логируются.
func LoggerMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// хендлер ничего не записал
				status = http.StatusOK
			}

			var fields []zap.Field
			if id := chimw.GetReqID(r.Context()); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}

			ms := float64(time.Since(start).Microseconds()) / 1000
			log.LogRequest(r.Method, r.RequestURI, status, ww.BytesWritten(), ms, fields...)
		})
	}
}
