package middleware

import (
	"log"
	"net/http"
	"strconv"

	"github.com/KyryloKozlovskyi/transaction-website/internal/ratelimit"
	"github.com/labstack/echo/v4"
)

// RateLimit rejects requests that exceed the policy's window limit for
// the client address. Rejections carry a Retry-After hint in seconds.
func RateLimit(store ratelimit.Store, policy ratelimit.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, retryAfter := store.Check(c.RealIP(), policy)
			if !allowed {
				log.Printf("%s rate limit exceeded for %s", policy.Name, c.RealIP())
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later.")
			}
			return next(c)
		}
	}
}
