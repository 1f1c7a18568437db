package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/observability"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

// Recovery turns a handler panic into a 500 error body and counts it.
func Recovery(log *logger.Logger, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			m.IncPanicRecovery()
			if log != nil {
				log.Error("panic recovered", "path", c.Request.URL.Path, "panic", fmt.Sprint(rec))
			}
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.RespondError(c, fmt.Errorf("panic: %v", rec))
		}()
		c.Next()
	}
}
