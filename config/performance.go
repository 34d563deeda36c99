package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// SlowRequestThreshold is the latency above which a request is flagged.
const SlowRequestThreshold = 200 * time.Millisecond

// PerformanceLogger logs every request with its latency and cache outcome and
// flags the ones slower than threshold.
func PerformanceLogger(threshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		cacheStatus := c.Writer.Header().Get("X-Cache")
		if cacheStatus == "" {
			cacheStatus = "-"
		}
		log.Printf("[PERF] %s %s | Status: %d | Cache: %s | Time: %v",
			c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), cacheStatus, latency)

		if latency > threshold {
			log.Printf("SLOW REQUEST: %s %s took %v (errors: %d)",
				c.Request.Method, c.Request.URL.Path, latency, len(c.Errors))
		}
	}
}
