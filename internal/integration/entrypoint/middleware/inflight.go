package middleware

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// InflightCounter tracks how many requests are currently being served.
// It replaces a single shared loading boolean: each request contributes
// to the count for exactly its own lifetime.
type InflightCounter struct {
	count atomic.Int64
}

// NewInflightCounter creates a new in-flight request counter.
func NewInflightCounter() *InflightCounter {
	return &InflightCounter{}
}

// Middleware returns a Gin handler that counts the request as in flight
// until the handler chain finishes.
func (c *InflightCounter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		c.count.Add(1)
		defer c.count.Add(-1)
		ctx.Next()
	}
}

// Count returns the number of requests currently in flight.
func (c *InflightCounter) Count() int64 {
	return c.count.Load()
}
