package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrustedProxies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	trust, err := TrustedProxies([]string{"10.1.0.0/16", "203.0.113.7"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", trust, func(c *gin.Context) {
		if FromTrustedProxy(c) {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := map[string]int{
		"10.1.44.2:80":         http.StatusNoContent,
		"203.0.113.7:80":       http.StatusNoContent,
		"[::ffff:10.1.0.9]:80": http.StatusNoContent,
		"203.0.113.8:80":       http.StatusOK,
		"192.0.2.1:1234":       http.StatusOK,
	}
	for addr, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, addr)
	}
}

func TestTrustedProxiesRejectsGarbage(t *testing.T) {
	_, err := TrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)
}
