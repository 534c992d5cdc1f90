package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/misinform-app/articles/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	r.POST("/ping", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func serve(r *gin.Engine, method, origin string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowAllEchoesOrigin(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))

	w := serve(r, http.MethodGet, "https://news.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://news.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))

	w := serve(r, http.MethodOptions, "https://news.example",
		"Access-Control-Request-Method", "POST",
		"Access-Control-Request-Headers", "Content-Type, X-Request-ID")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "Content-Type, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	r := newRouter(CORS([]string{"https://allowed.example/"}))

	w := serve(r, http.MethodGet, "https://allowed.example")
	assert.Equal(t, "https://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "https://other.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "https://other.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	r := newRouter(CORS([]string{"https://allowed.example"}))

	w := serve(r, http.MethodPost, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := serve(r, http.MethodGet, "")
	generated := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = serve(r, http.MethodGet, "", "X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLogger_PassesResponseThrough(t *testing.T) {
	prev := utils.Zlog
	utils.Zlog = zaptest.NewLogger(t)
	t.Cleanup(func() { utils.Zlog = prev })

	r := newRouter(RequestID(), Logger())

	w := serve(r, http.MethodPost, "")
	assert.Equal(t, http.StatusCreated, w.Code)
}
