package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Kosench/go-link-tracker/internal/cache"
	"github.com/gin-gonic/gin"
)

// RedisRateLimit считает запросы клиента в Redis.
// При недоступном Redis запросы пропускаются, а не блокируются.
func RedisRateLimit(limiter cache.RateLimiter, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := cache.CacheKeys.RateLimit(c.ClientIP())

		count, err := limiter.IncrementRateLimit(c.Request.Context(), key, window)
		if err != nil {
			log.Printf("Rate limit error: %v", err)
			c.Next()
			return
		}

		if count > int64(maxRequests) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}

// InMemoryRateLimit - fallback на случай работы без Redis.
// Скользящее окно на timestamp'ах, состояние только в памяти процесса.
func InMemoryRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	requests := make(map[string][]time.Time)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		mu.Lock()

		recent := requests[clientIP][:0]
		for _, t := range requests[clientIP] {
			if now.Sub(t) < window {
				recent = append(recent, t)
			}
		}

		if len(recent) >= maxRequests {
			requests[clientIP] = recent
			mu.Unlock()
			tooManyRequests(c)
			return
		}

		requests[clientIP] = append(recent, now)
		mu.Unlock()

		c.Next()
	}
}

func tooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "Too many requests. Please try again later.",
	})
	c.Abort()
}
