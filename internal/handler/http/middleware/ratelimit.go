package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit throttles per employee when claims are present, else per client IP.
// formatted uses limiter's syntax, e.g. "60-M".
func RateLimit(formatted string) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(func(r *http.Request) string {
			if claims, ok := ClaimsFromContext(r.Context()); ok {
				return "employee:" + claims.EmployeeID
			}
			return "ip:" + instance.GetIPKey(r)
		}),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, "Rate limit exceeded, try again shortly")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			slog.ErrorContext(r.Context(), "Rate limiter failed", "error", err)
			response.InternalServerError(w, "An unexpected error occurred")
		}),
	)

	return mw.Handler, nil
}
