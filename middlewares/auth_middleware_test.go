package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, role string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		Sub:  42,
		Role: role,
		Name: "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func doRequest(handler echo.HandlerFunc, mws []echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}

func TestRequireAuth(t *testing.T) {
	mw := []echo.MiddlewareFunc{RequireAuth(testSecret)}

	// ไม่มี header
	rec := doRequest(okHandler, mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// header ผิดรูป
	rec = doRequest(okHandler, mw, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// secret ไม่ตรง
	rec = doRequest(okHandler, mw, "Bearer "+signToken(t, "other-secret", "USER", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// token หมดอายุ
	rec = doRequest(okHandler, mw, "Bearer "+signToken(t, testSecret, "USER", -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// token ถูกต้อง
	rec = doRequest(okHandler, mw, "Bearer "+signToken(t, testSecret, "USER", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
}

func TestRequireRole(t *testing.T) {
	mw := []echo.MiddlewareFunc{RequireAuth(testSecret), RequireRole("ADMIN", "MANAGER")}

	rec := doRequest(okHandler, mw, "Bearer "+signToken(t, testSecret, "USER", time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(okHandler, mw, "Bearer "+signToken(t, testSecret, "MANAGER", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)

	// เทียบ role แบบ case-insensitive
	rec = doRequest(okHandler, mw, "Bearer "+signToken(t, testSecret, "admin", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
}
