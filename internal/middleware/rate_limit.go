package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const defaultMaxClients = 10000

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// WriteLimiter hands out one token bucket per client IP. At most maxClients
// buckets are kept; idle buckets are evicted first.
type WriteLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	every      time.Duration
	burst      int
	maxClients int
	now        func() time.Time
}

// NewWriteLimiter allows perSecond requests per client with the given burst.
// A non-positive perSecond disables limiting.
func NewWriteLimiter(perSecond float64, burst int) *WriteLimiter {
	l := &WriteLimiter{
		buckets:    make(map[string]*bucket),
		burst:      max(burst, 1),
		maxClients: defaultMaxClients,
		now:        time.Now,
	}
	if perSecond > 0 {
		l.every = time.Duration(float64(time.Second) / perSecond)
	}
	return l
}

// idleAfter is how long a bucket takes to refill completely. A bucket idle
// that long behaves exactly like a new one, so dropping it loses nothing.
func (l *WriteLimiter) idleAfter() time.Duration {
	return l.every * time.Duration(l.burst)
}

func (l *WriteLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxClients {
			l.evict(now)
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// evict drops every fully refilled bucket. If none qualifies, the least
// recently seen bucket goes.
func (l *WriteLimiter) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleAfter() {
			delete(l.buckets, key)
			continue
		}
		if oldestKey == "" || b.lastSeen.Before(oldest) {
			oldestKey, oldest = key, b.lastSeen
		}
	}
	if len(l.buckets) >= l.maxClients && oldestKey != "" {
		delete(l.buckets, oldestKey)
	}
}

// Allow reports whether a request from key may proceed now.
func (l *WriteLimiter) Allow(key string) bool {
	if l == nil || l.every <= 0 {
		return true
	}
	return l.limiter(key).AllowN(l.now(), 1)
}

// RateLimited rejects requests over the client's budget with 429.
func RateLimited(l *WriteLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many write requests, slow down",
			})
		}
		return c.Next()
	}
}
