package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenTTL = 5 * time.Minute
)

// Service verifies access tokens issued by the identity provider and mints the
// short-lived tokens EventSource clients pass as a query parameter.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(claims auth.Claims, ttl time.Duration) (token string, err error)
	GenerateSSEToken(claims auth.Claims) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (auth.Claims, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, acceptableSkew time.Duration) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(acceptableSkew)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken signs a token with the same claims the identity provider issues.
// Used by tests and local tooling.
func (j *JWTService) GenerateAccessToken(claims auth.Claims, ttl time.Duration) (string, error) {
	return j.encode(claims, TokenTypeAccess, ttl)
}

func (j *JWTService) GenerateSSEToken(claims auth.Claims) (string, int, error) {
	token, err := j.encode(claims, TokenTypeSSE, sseTokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(sseTokenTTL.Seconds()), nil
}

func (j *JWTService) encode(claims auth.Claims, tokenType string, ttl time.Duration) (string, error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": claims.EmployeeID,
		"role":        claims.Role,
		"type":        tokenType,
		"exp":         time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return tokenString, nil
}

// ValidateSSEToken rejects anything but an unexpired sse-typed token.
func (j *JWTService) ValidateSSEToken(tokenString string) (auth.Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	claims, err := ClaimsFromMap(token.PrivateClaims(), TokenTypeSSE)
	if err != nil {
		return auth.Claims{}, err
	}
	return claims, nil
}

// ClaimsFromMap extracts employee_id and role, requiring the given token type.
func ClaimsFromMap(m map[string]interface{}, tokenType string) (auth.Claims, error) {
	if t, _ := m["type"].(string); t != tokenType {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	employeeID, _ := m["employee_id"].(string)
	if employeeID == "" {
		return auth.Claims{}, auth.ErrMissingEmployeeID
	}
	role, _ := m["role"].(string)
	return auth.Claims{EmployeeID: employeeID, Role: role}, nil
}
