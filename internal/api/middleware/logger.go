package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per API request with status and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Printf("[API] %s %s -> %d (%v, %d bytes)",
			c.Request.Method, path, c.Writer.Status(), time.Since(start), c.Writer.Size())
	}
}
