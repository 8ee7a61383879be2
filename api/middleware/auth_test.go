package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"besties/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, err := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})

	token, err := tokens.GenerateToken("u1", "ann@example.com", "Ann")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, "u1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}
