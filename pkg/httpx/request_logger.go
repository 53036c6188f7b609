package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/wiki_search/internal/ports"
)

// RequestLogger - middleware логирования HTTP-запросов.
// request_id и trace_id логгер берёт из контекста сам.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "/metrics", "/ping":
			return
		case "":
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		format := "request method=%s path=%s status=%d ip=%s duration=%s size=%d"
		args := []any{c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size()}

		if status >= 500 {
			log.Errorf(c.Request.Context(), format, args...)
			return
		}
		log.Infof(c.Request.Context(), format, args...)
	}
}
