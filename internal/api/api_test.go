package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRouterHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	tests := []struct {
		name         string
		origins      []string
		wantOrigins  []string
		wantAllowAll bool
	}{
		{name: "empty", origins: nil, wantOrigins: nil, wantAllowAll: false},
		{
			name:        "comma separated entry",
			origins:     []string{"https://a.example, https://b.example"},
			wantOrigins: []string{"https://a.example", "https://b.example"},
		},
		{
			name:         "wildcard",
			origins:      []string{"*"},
			wantAllowAll: true,
		},
		{
			name:        "blank entries dropped",
			origins:     []string{" ", "https://a.example"},
			wantOrigins: []string{"https://a.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, allowAll := normalizeAllowedOrigins(tt.origins)
			assert.Equal(t, tt.wantOrigins, got)
			assert.Equal(t, tt.wantAllowAll, allowAll)
		})
	}
}
