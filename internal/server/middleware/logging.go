package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder перехватывает статус и объем ответа для access-лога.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.written += int64(n)
	return n, err
}

// LoggingMiddleware пишет access-лог: метод, путь, статус, длительность,
// размер ответа. Тела запросов (пароли, токены) не логируются.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.Log(r.Context(), levelFor(rec.status), "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes_written", rec.written,
			)
		})
	}
}

// Уровень лога по классу статуса ответа.
func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// LoggingWithSkip логирует все, кроме перечисленных путей. Нужен для
// health check, который опрашивается слишком часто для access-лога.
func LoggingWithSkip(logger *slog.Logger, skipPaths []string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		logged := LoggingMiddleware(logger)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
