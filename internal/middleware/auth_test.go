package middleware

import (
	"context"
	"dating_app_backend/internal/util"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid")
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(stubVerifier{"good": "user-1"}), func(c *gin.Context) {
		c.String(http.StatusOK, util.CurrentUserID(c))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine()

	cases := []struct {
		name   string
		header string
		value  string
		code   int
		body   string
	}{
		{"custom header", util.AuthHeader, "good", http.StatusOK, "user-1"},
		{"bearer fallback", "Authorization", "Bearer good", http.StatusOK, "user-1"},
		{"invalid token", util.AuthHeader, "bad", http.StatusUnauthorized, ""},
		{"missing token", "", "", http.StatusUnauthorized, ""},
		{"non bearer scheme", "Authorization", "Basic good", http.StatusUnauthorized, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}
