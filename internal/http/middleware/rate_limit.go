package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/observability"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
)

const CodeRateLimited = "rate_limited"

var errTooManyRequests = errors.New("too many requests")

// RateLimit sheds load with a shared token bucket. rps <= 0 disables it.
func RateLimit(rps float64, burst int, m *observability.Metrics) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = int(math.Ceil(rps))
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/rps))))
	return func(c *gin.Context) {
		if !limiter.Allow() {
			m.IncRateLimitReject()
			c.Header("Retry-After", retryAfter)
			response.RespondError(c, apierr.New(http.StatusTooManyRequests, CodeRateLimited, errTooManyRequests))
			return
		}
		c.Next()
	}
}
