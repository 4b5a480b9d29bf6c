package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request. Report routes can be slow because of
// geocoding, so latency is always included.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		entity := c.Param("id")
		if entity == "" {
			entity = "-"
		}
		subject := Subject(c)
		if subject == "" {
			subject = "-"
		}

		log.Printf("[HTTP] %s %s %d %v ip=%s entity=%s sub=%s %s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			entity,
			subject,
			c.Errors.String(),
		)
	}
}
