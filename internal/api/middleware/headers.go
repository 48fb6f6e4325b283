package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

const (
	HeaderAPIVersion   = "X-API-Version"
	HeaderResponseTime = "X-Response-Time"
)

// DynamicHeaders stamps every response with the API version and the time
// spent producing it. The timing header is computed right before the
// response is committed.
func DynamicHeaders(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			res := c.Response()
			res.Header().Set(HeaderAPIVersion, version)
			res.Before(func() {
				res.Header().Set(HeaderResponseTime, time.Since(start).String())
			})
			return next(c)
		}
	}
}
