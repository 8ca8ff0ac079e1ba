package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/id", func(c *gin.Context) { c.String(200, c.GetString("request_id")) })

	t.Run("generates", func(t *testing.T) {
		w := serve(r, "/id", "")
		require.Equal(t, http.StatusOK, w.Code)
		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, w.Body.String())
	})

	t.Run("echoes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/id", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		require.Equal(t, "abc-123", w.Body.String())
	})
}
