package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAcademic = "academic"
	RoleManager  = "manager"
	RoleTeacher  = "teacher"
)

type Claims struct {
	Role   string `json:"role"`
	UserID any    `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Decoder turns a bearer token into claims.
type Decoder struct {
	secret []byte
	verify bool
}

// NewDecoder verifies HS256 signatures against secret when verify is set.
// With verify off the payload is trusted as is; that mode exists for
// deployments where a gateway has already checked the token.
func NewDecoder(secret string, verify bool) *Decoder {
	return &Decoder{secret: []byte(secret), verify: verify}
}

func (d *Decoder) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if !d.verify {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return d.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Sign issues an HS256 token. Used by tests and local tooling.
func Sign(secret string, claims *Claims) (string, error) {
	if secret == "" {
		return "", errors.New("empty signing secret")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
