package limiter

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

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

func newRateLimiter(rps int, burst int, ttl time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

func (r *rateLimiter) getVisitor(ip string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter
}

func (r *rateLimiter) cleanup(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.ttl {
			delete(r.visitors, ip)
		}
	}
}

func (r *rateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		r.cleanup(time.Now())
	}
}

// Limit allows rps requests per second with burst per client IP.
// Visitors not seen for ttl are forgotten. rps <= 0 disables limiting.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	l := newRateLimiter(rps, burst, ttl)

	go l.cleanupVisitors()

	return l.handle
}

func (r *rateLimiter) handle(c *gin.Context) {
	if !r.getVisitor(c.ClientIP(), time.Now()).Allow() {
		c.AbortWithStatus(http.StatusTooManyRequests)
		return
	}

	c.Next()
}
