package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter tracks a token bucket per client IP. Guests filling out a
// form stay well under the burst; scripted spam does not.
type RateLimiter struct {
	visitors sync.Map
	rps      rate.Limit
	burst    int
}

// NewRateLimiter creates a Gin middleware that applies per-IP rate
// limiting. rps is the steady-state rate, burst the bucket size.
func NewRateLimiter(rps rate.Limit, burst int) gin.HandlerFunc {
	rl := &RateLimiter{rps: rps, burst: burst}
	go rl.evictLoop(time.Minute)
	return rl.handle
}

func (rl *RateLimiter) handle(c *gin.Context) {
	if !rl.allow(c.ClientIP()) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"message": "too many requests, please try again later",
		})
		return
	}
	c.Next()
}

func (rl *RateLimiter) allow(ip string) bool {
	val, ok := rl.visitors.Load(ip)
	if !ok {
		limiter := rate.NewLimiter(rl.rps, rl.burst)
		val, _ = rl.visitors.LoadOrStore(ip, &visitor{limiter: limiter, lastSeen: time.Now()})
	}

	v := val.(*visitor)
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// evictLoop drops visitors idle longer than visitorTTL.
func (rl *RateLimiter) evictLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		rl.visitors.Range(func(key, value any) bool {
			if time.Since(value.(*visitor).lastSeen) > visitorTTL {
				rl.visitors.Delete(key)
			}
			return true
		})
	}
}
