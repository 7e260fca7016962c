package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
)

// rateLimiter хранит лимитеры по ключу (ID пользователя либо адрес)
type rateLimiter struct {
	limiters sync.Map
	rps      float64
	burst    int
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// RateLimit ограничивает частоту запросов на пользователя
// Ключом служит заголовок X-Sharer-User-Id, для анонимных запросов - RemoteAddr
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if burst <= 0 {
		burst = 5
	}
	limiter := &rateLimiter{rps: rps, burst: burst}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(SharerUserIDHeader)
			if key == "" {
				key = r.RemoteAddr
			}

			if !limiter.getLimiter(key).Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, "слишком много запросов")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
