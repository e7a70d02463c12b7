package middleware

import (
	"fmt"
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

// RateLimit allows up to maxRequests per window per client IP, mirroring the
// fixed request ceiling the platform has always enforced at the edge.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Hour
	}

	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
		limit    = rate.Every(window / time.Duration(maxRequests))
		ttl      = 2 * window
	)

	message := fmt.Sprintf("You exceeded %d request in per hour limit!", maxRequests)

	return func(ctx *gin.Context) {
		key := ctx.ClientIP()

		mu.Lock()
		v, ok := visitors[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(limit, maxRequests)}
			visitors[key] = v
		}
		v.lastSeen = time.Now()
		// Opportunistic cleanup keeps the map from growing unbounded.
		if len(visitors) > 10000 {
			for k, vv := range visitors {
				if time.Since(vv.lastSeen) > ttl {
					delete(visitors, k)
				}
			}
		}
		allowed := v.limiter.Allow()
		mu.Unlock()

		if !allowed {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": message})
			return
		}
		ctx.Next()
	}
}
