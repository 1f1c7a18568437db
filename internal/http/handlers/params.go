package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
)

const codeBodyTooLarge = "body_too_large"

func intParam(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Param(name))
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, apierr.Invalid("invalid %s format", name)
	}
	return v, nil
}

// floatQuery parses a required float query parameter.
func floatQuery(c *gin.Context, name string) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, apierr.Invalid("parameter %s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apierr.Invalid("invalid %s parameter", name)
	}
	return v, nil
}

// intQuery parses an optional int query parameter, returning def when absent.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.Invalid("invalid %s parameter", name)
	}
	return v, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierr.New(http.StatusRequestEntityTooLarge, codeBodyTooLarge, err)
		}
		return apierr.Invalid("invalid request body: %v", err)
	}
	return nil
}
