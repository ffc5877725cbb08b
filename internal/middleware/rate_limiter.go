package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type RateLimiterConfig struct {
	RPS   float64
	Burst int
	// IdleTTL is how long a client's bucket is kept after its last request.
	IdleTTL time.Duration
}

// RateLimiter keeps one token bucket per client IP. Buckets of idle clients
// expire from the store.
type RateLimiter struct {
	mu      sync.Mutex
	clients *cache.Cache
	limit   rate.Limit
	burst   int
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	rl := &RateLimiter{
		// The store's own janitor cannot be stopped, so expiry runs in janitor below.
		clients: cache.New(config.IdleTTL, 0),
		limit:   rate.Limit(config.RPS),
		burst:   config.Burst,
		ttl:     config.IdleTTL,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go rl.janitor(config.IdleTTL)
	return rl
}

func (rl *RateLimiter) janitor(interval time.Duration) {
	defer close(rl.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.clients.DeleteExpired()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.clients.Get(key); ok {
		l := v.(*rate.Limiter)
		rl.clients.Set(key, l, rl.ttl)
		return l
	}

	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients.Set(key, l, rl.ttl)
	return l
}

// Allow reports whether the client identified by key may make a request now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

// Stop ends the expiry loop and waits for it to exit.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.Response{
				Success: false,
				Message: "Too many requests",
			})
			return
		}
		c.Next()
	}
}
