package http

import (
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
)

// requireClaims writes 401 and returns false when the request carries no verified claims.
func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return auth.Claims{}, false
	}
	return claims, true
}
