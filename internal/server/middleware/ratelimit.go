package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter ограничивает частоту запросов по ключу (IP клиента):
// фиксированное окно, rate запросов на ключ за window.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	logger  *slog.Logger
	done    chan struct{}
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		logger:  logger,
		done:    make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow списывает токен для ключа. Бакет пополняется целиком раз в окно.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[key] = b
	}

	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens == 0 {
		return false
	}
	b.tokens--
	return true
}

// Stop останавливает фоновую очистку.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// cleanupLoop выбрасывает бакеты, молчавшие дольше двух окон,
// иначе карта растет по одному бакету на каждый уникальный IP.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * rl.window)

			rl.mu.Lock()
			for key, b := range rl.buckets {
				if b.lastRefill.Before(cutoff) {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// RateLimitMiddleware оборачивает handler общим на весь сервер лимитером.
func RateLimitMiddleware(rate int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, window, logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			if !limiter.Allow(ip) {
				logger.Warn("rate limit exceeded",
					"ip", ip,
					"method", r.Method,
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded, please try again later"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP определяет IP клиента с учетом заголовков прокси.
func getClientIP(r *http.Request) string {
	// X-Forwarded-For: первый адрес в списке принадлежит реальному клиенту
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
