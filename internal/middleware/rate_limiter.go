package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/LeZelote01/stock-manager/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ipLimiter is a per-IP sliding-window counter. One instance backs the login
// throttle, another the general API throttle; both share the purge goroutine.
type ipLimiter struct {
	mu      sync.Mutex
	windows map[string]*ipWindow
	limit   int
	window  time.Duration
	message string
}

type ipWindow struct {
	count int
	until time.Time
}

func newIPLimiter(limit int, window time.Duration, message string) *ipLimiter {
	l := &ipLimiter{
		windows: make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
		message: message,
	}
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	return l
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		l.mu.Lock()
		w, ok := l.windows[ip]
		if !ok || now.After(w.until) {
			w = &ipWindow{until: now.Add(l.window)}
			l.windows[ip] = w
		}
		w.count++
		count, until := w.count, w.until
		l.mu.Unlock()

		if count > l.limit {
			c.Header("Retry-After", until.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// purge drops expired windows so IPs that never return do not accumulate.
func (l *ipLimiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, w := range l.windows {
		if now.After(w.until) {
			delete(l.windows, ip)
			purged++
		}
	}
	return purged
}

var (
	limitersMu sync.Mutex
	limiters   []*ipLimiter
)

const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			total := 0
			limitersMu.Lock()
			for _, l := range limiters {
				total += l.purge(now)
			}
			limitersMu.Unlock()
			if total > 0 {
				log.Debug().Int("entries_purged", total).Msg("rate limiter windows purged")
			}
		}
	}()
}

var loginLimiter = newIPLimiter(20, time.Minute,
	"Trop de tentatives de connexion. Réessayez dans 1 minute.")

// LoginRateLimiter throttles login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.middleware()
}

// RateLimiter returns a general-purpose per-IP sliding-window limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window, "Trop de requêtes. Réessayez dans un instant.").middleware()
}
