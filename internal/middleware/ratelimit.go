package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ruralhealth/connect/backend/internal/apierror"
	"github.com/ruralhealth/connect/backend/internal/logger"
	"github.com/ruralhealth/connect/backend/internal/metrics"
)

// RateLimiter provides token-bucket rate limiting per client IP
type RateLimiter struct {
	clients map[string]*clientInfo
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idleTTL time.Duration // how long an idle client bucket is kept
	name    string        // identifier for logging
	stop    chan struct{}
	once    sync.Once
}

type clientInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter that allows requestsPerSecond
// sustained with bursts of up to burst requests per client
func NewRateLimiter(requestsPerSecond float64, burst int, name string) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientInfo),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		idleTTL: 3 * time.Minute,
		name:    name,
		stop:    make(chan struct{}),
	}

	go rl.cleanup(time.Minute)

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Float64("requests_per_second", requestsPerSecond),
		logger.Int("burst", burst),
	)

	return rl
}

// Close stops the cleanup goroutine
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// cleanup removes idle client buckets periodically
func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	cleaned := 0
	for ip, info := range rl.clients {
		if now.Sub(info.lastSeen) > rl.idleTTL {
			delete(rl.clients, ip)
			cleaned++
		}
	}
	remaining := len(rl.clients)
	rl.mu.Unlock()

	if cleaned > 0 {
		logger.Default().Debug("rate limiter cleanup completed",
			logger.String("name", rl.name),
			logger.Int("cleaned", cleaned),
			logger.Int("remaining", remaining),
		)
	}
}

// isAllowed reports whether a request from ip may proceed now, and if not,
// how long the client should wait
func (rl *RateLimiter) isAllowed(ip string, now time.Time) (bool, time.Duration) {
	rl.mu.Lock()
	info, exists := rl.clients[ip]
	if !exists {
		info = &clientInfo{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = info
	}
	info.lastSeen = now
	limiter := info.limiter
	rl.mu.Unlock()

	r := limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// RateLimit returns a middleware handler that limits requests per client IP.
// m may be nil.
func RateLimit(limiter *RateLimiter, m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get client IP (handles X-Forwarded-For for reverse proxies)
		ip := c.ClientIP()

		allowed, wait := limiter.isAllowed(ip, time.Now())
		if !allowed {
			retryAfter := int(math.Ceil(wait.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("retry_after", retryAfter),
			)
			if m != nil {
				m.RateLimited.Inc()
			}

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
