package auth

import (
	"strings"

	"isml_backend/internal/apperr"
	"isml_backend/internal/response"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

var (
	ErrNoAuthHeader = apperr.New(apperr.Auth, "NO_AUTH_HEADER", "Access Denied. No Token Provided.")
	ErrMissingToken = apperr.New(apperr.Auth, "MISSING_TOKEN", "Access Denied. Token is missing.")
	ErrInvalidToken = apperr.New(apperr.Auth, "INVALID_TOKEN", "Invalid Token")
)

func errForbiddenRole(roles []string) *apperr.Error {
	return apperr.New(apperr.Forbidden, "FORBIDDEN_ROLE",
		"Access Denied. Only "+strings.Join(roles, "s, ")+"s are allowed.")
}

// RequireRole lets a request through when its bearer token carries one of
// roles, compared exactly.
func RequireRole(decoder *Decoder, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, ErrNoAuthHeader)
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) < 2 {
			response.Fail(c, ErrMissingToken)
			return
		}

		claims, err := decoder.Decode(parts[1])
		if err != nil {
			response.Fail(c, apperr.Wrap(ErrInvalidToken, err))
			return
		}

		allowed := false
		for _, role := range roles {
			if claims.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			response.Fail(c, errForbiddenRole(roles))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireRole.
func ClaimsFrom(c *gin.Context) *Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*Claims)
	return claims
}
