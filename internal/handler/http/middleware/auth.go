package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type claimsKey struct{}

// AuthRequired runs after jwtauth.Verifier. It accepts only access tokens that carry
// an employee_id and stores the parsed claims on the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claimsMap, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		claims, err := jwt.ClaimsFromMap(claimsMap, jwt.TokenTypeAccess)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}
