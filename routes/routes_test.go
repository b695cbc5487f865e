package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paywall-backend/access"
	"paywall-backend/catalog"
	"paywall-backend/grant"
	accessHandler "paywall-backend/handlers/access"
	contentHandler "paywall-backend/handlers/content"
	networksHandler "paywall-backend/handlers/networks"
	"paywall-backend/handlers/ping"
	"paywall-backend/middleware"
	"paywall-backend/store"
	"paywall-backend/testutils"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

func setupRouter(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	t.Helper()
	issuer, err := grant.NewIssuer([]byte("secret"), time.Hour, nil)
	require.NoError(t, err)
	s := store.NewMemoryStore()
	cookies := grant.Cookies{}

	return SetupRouter(Handlers{
		Access:       accessHandler.New(access.NewService(s, issuer, nil), cookies, s, nil),
		Content:      contentHandler.New(catalog.NewService(s), nil),
		Networks:     networksHandler.New(nil, "test"),
		Ping:         ping.New(s),
		Cookies:      cookies,
		GrantLimiter: limiter,
		CORSOrigins:  []string{"http://localhost:3000"},
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	r := setupRouter(t, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/ping", http.StatusOK},
		{http.MethodGet, "/networks", http.StatusOK},
		{http.MethodGet, "/content", http.StatusOK},
		{http.MethodGet, "/content/missing", http.StatusNotFound},
		{http.MethodGet, "/access/missing", http.StatusNotFound},
		{http.MethodGet, "/creators/0x1234567890abcdef1234567890abcdef12345678/content", http.StatusOK},
		{http.MethodPost, "/access/missing/checkout", http.StatusNotImplemented},
		{http.MethodGet, "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	r := setupRouter(t, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/access/abc/grant", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSetupRouter_ExposesPaymentHeaders(t *testing.T) {
	r := setupRouter(t, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/access/missing", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	exposed := w.Header().Get("Access-Control-Expose-Headers")
	assert.True(t, strings.Contains(exposed, "X-Payment-Amount"), exposed)
}

func TestSetupRouter_GrantIsRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Hour)
	defer limiter.Stop()
	r := setupRouter(t, limiter)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/access/abc/grant", strings.NewReader(`{"proof":"tx"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusTooManyRequests, codes[1])
}
