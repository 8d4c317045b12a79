package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP and drops idle entries
// in the background until Stop is called.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter allows requestsPerWindow requests every windowSeconds per
// IP. A non-positive request count disables limiting.
func NewRateLimiter(requestsPerWindow, windowSeconds, burst int) *RateLimiter {
	limit := rate.Inf
	if requestsPerWindow > 0 {
		if windowSeconds <= 0 {
			windowSeconds = 60
		}
		limit = rate.Limit(float64(requestsPerWindow) / float64(windowSeconds))
	}
	if burst <= 0 {
		burst = requestsPerWindow
	}
	if burst <= 0 {
		burst = 1
	}

	l := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *RateLimiter) allow(ip string) bool {
	if l.limit == rate.Inf {
		return true
	}

	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

func (l *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-5 * time.Minute)
			l.mu.Lock()
			for ip, v := range l.visitors {
				if v.lastSeen.Before(cutoff) {
					delete(l.visitors, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *RateLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
