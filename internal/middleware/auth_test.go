package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		UserID: "u-1",
		Name:   "Shan",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", JWTAuth(testSecret))
	if len(roles) > 0 {
		grp.Use(RequireRole(roles...))
	}
	grp.GET("/ping", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protectedRouter()

	w := doGet(r, signToken(t, "operator", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"operator"`)

	// Missing header.
	w = doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = doGet(r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Expired token.
	w = doGet(r, signToken(t, "operator", -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	r := protectedRouter()
	claims := JWTClaims{Role: "manager", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter("manager")

	w := doGet(r, signToken(t, "manager", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, signToken(t, "operator", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
