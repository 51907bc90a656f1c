package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if !claims.IsAdmin() {
			response.HandleError(w, auth.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
