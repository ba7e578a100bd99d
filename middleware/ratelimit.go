package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"estate-api/dto"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore asocia cada cliente a su token bucket. Janitor borra las
// entradas inactivas por más de staleAfter.
type limiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	limit      rate.Limit
	burst      int
	staleAfter time.Duration
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	lim := rate.NewLimiter(s.limit, s.burst)
	s.entries[key] = &limiterEntry{limiter: lim, lastSeen: time.Now()}
	return lim
}

func (s *limiterStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.staleAfter)
	for k, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// RateLimiter es un token bucket por cliente
type RateLimiter struct {
	store *limiterStore
}

// NewRateLimiter permite rps requests por segundo por cliente, con el burst
// dado
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{store: &limiterStore{
		entries:    make(map[string]*limiterEntry),
		limit:      rate.Limit(rps),
		burst:      burst,
		staleAfter: 10 * time.Minute,
	}}
}

// Janitor elimina cada minuto los limiters inactivos hasta que termine ctx
func (l *RateLimiter) Janitor(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.store.cleanup(now)
		}
	}
}

// Middleware limita por usuario autenticado si lo hay, si no por IP. Los
// preflight y /health quedan exentos.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		key := "ip:" + c.ClientIP()
		if p := PrincipalFrom(c); p != nil {
			key = "user:" + p.Username
		}
		if !l.store.get(key).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(dto.ErrorCodeRateLimited, "too many requests"))
			return
		}
		c.Next()
	}
}
