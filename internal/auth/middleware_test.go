package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"isml_backend/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupRouter(decoder *Decoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/academic", RequireRole(decoder, RoleAcademic), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": ClaimsFrom(c).Role})
	})
	r.GET("/staff", RequireRole(decoder, RoleAcademic, RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func mustToken(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()
	token, err := Sign(secret, &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})
	require.NoError(t, err)
	return token
}

func doGet(r http.Handler, path, authHeader string) (*httptest.ResponseRecorder, response.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body response.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRequireRole(t *testing.T) {
	r := setupRouter(NewDecoder(testSecret, true))

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"no header", "", http.StatusUnauthorized, "NO_AUTH_HEADER"},
		{"no token part", "Bearer", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"wrong signature", "Bearer " + mustToken(t, "other-secret", RoleAcademic, time.Hour), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expired", "Bearer " + mustToken(t, testSecret, RoleAcademic, -time.Minute), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"wrong role", "Bearer " + mustToken(t, testSecret, RoleTeacher, time.Hour), http.StatusForbidden, "FORBIDDEN_ROLE"},
		{"role is case sensitive", "Bearer " + mustToken(t, testSecret, "Academic", time.Hour), http.StatusForbidden, "FORBIDDEN_ROLE"},
		{"ok", "Bearer " + mustToken(t, testSecret, RoleAcademic, time.Hour), http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doGet(r, "/academic", tc.header)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Code)
			if tc.status != http.StatusOK {
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestRequireRoleMessage(t *testing.T) {
	r := setupRouter(NewDecoder(testSecret, true))
	_, body := doGet(r, "/academic", "Bearer "+mustToken(t, testSecret, RoleManager, time.Hour))
	assert.Equal(t, "Access Denied. Only academics are allowed.", body.Error)
}

func TestRequireRoleAnyOf(t *testing.T) {
	r := setupRouter(NewDecoder(testSecret, true))
	w, _ := doGet(r, "/staff", "Bearer "+mustToken(t, testSecret, RoleTeacher, time.Hour))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doGet(r, "/staff", "Bearer "+mustToken(t, testSecret, RoleManager, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDecoderWithoutVerification(t *testing.T) {
	r := setupRouter(NewDecoder("", false))

	// Signed with a key the server has never seen.
	w, _ := doGet(r, "/academic", "Bearer "+mustToken(t, "someone-else", RoleAcademic, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := doGet(r, "/academic", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", body.Code)
}
