package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter stores the rate limiter for a specific client.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterMiddleware applies a token bucket per client.
type RateLimiterMiddleware struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	// Seconds until one more token is available
	retryAfter int
	now        func() time.Time
}

// NewRateLimiterMiddleware allows burst requests at once and perMinute requests per minute after that.
func NewRateLimiterMiddleware(perMinute, burst int) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		clients:    make(map[string]*clientLimiter),
		limit:      rate.Limit(float64(perMinute) / 60),
		burst:      burst,
		retryAfter: int(math.Ceil(60 / float64(max(perMinute, 1)))),
		now:        time.Now,
	}
}

// getClientIdentifier keys clients by address.
func getClientIdentifier(c *gin.Context) string {
	return c.ClientIP()
}

// getClientLimiter retrieves or creates the limiter for a given client identifier.
func (rm *RateLimiterMiddleware) getClientLimiter(identifier string) *rate.Limiter {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	cl, exists := rm.clients[identifier]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rm.limit, rm.burst)}
		rm.clients[identifier] = cl
	}
	cl.lastSeen = rm.now()
	return cl.limiter
}

// Cleanup removes clients not seen within idle and returns how many were dropped.
func (rm *RateLimiterMiddleware) Cleanup(idle time.Duration) int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	count := 0
	for id, cl := range rm.clients {
		if rm.now().Sub(cl.lastSeen) > idle {
			delete(rm.clients, id)
			count++
		}
	}
	return count
}

// RunCleanup calls Cleanup every interval until stop is closed.
func (rm *RateLimiterMiddleware) RunCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := rm.Cleanup(3 * interval); n > 0 {
				slog.Debug("Rate limiter cleanup", "removed", n)
			}
		}
	}
}

// Limit creates the Gin middleware handler.
func (rm *RateLimiterMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := getClientIdentifier(c)
		limiter := rm.getClientLimiter(clientKey)

		if !limiter.AllowN(rm.now(), 1) {
			c.Header("Retry-After", strconv.Itoa(rm.retryAfter))
			slog.WarnContext(c.Request.Context(), "Rate limit exceeded", "client", clientKey, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}
