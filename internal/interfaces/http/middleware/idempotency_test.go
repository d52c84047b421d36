package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wallet-ledger.backend/pkg/redis"
)

func newIdempotencyRouter(t *testing.T, handled *int64, status int) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/pay", IdempotencyMiddleware(), func(c *gin.Context) {
		atomic.AddInt64(handled, 1)
		c.JSON(status, gin.H{"message": "done"})
	})
	return r
}

func doPost(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	var handled int64
	r := newIdempotencyRouter(t, &handled, http.StatusOK)

	first := doPost(r, "key-1")
	require.Equal(t, http.StatusOK, first.Code)
	require.EqualValues(t, 1, atomic.LoadInt64(&handled))

	second := doPost(r, "key-1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.EqualValues(t, 1, atomic.LoadInt64(&handled), "handler must not run twice")
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyMiddleware_DistinctKeysBothRun(t *testing.T) {
	var handled int64
	r := newIdempotencyRouter(t, &handled, http.StatusOK)

	doPost(r, "key-a")
	doPost(r, "key-b")
	assert.EqualValues(t, 2, atomic.LoadInt64(&handled))
}

func TestIdempotencyMiddleware_NoHeaderPassesThrough(t *testing.T) {
	var handled int64
	r := newIdempotencyRouter(t, &handled, http.StatusOK)

	doPost(r, "")
	doPost(r, "")
	assert.EqualValues(t, 2, atomic.LoadInt64(&handled))
}

func TestIdempotencyMiddleware_FailedAttemptStaysRetryable(t *testing.T) {
	var handled int64
	r := newIdempotencyRouter(t, &handled, http.StatusBadRequest)

	first := doPost(r, "key-1")
	require.Equal(t, http.StatusBadRequest, first.Code)

	second := doPost(r, "key-1")
	require.Equal(t, http.StatusBadRequest, second.Code)
	assert.EqualValues(t, 2, atomic.LoadInt64(&handled), "failed responses are not replayed")
}

func TestIdempotencyMiddleware_InProgressConflicts(t *testing.T) {
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	// Simulate a concurrent request still holding the lock.
	require.NoError(t, mr.Set("idempotency:/pay:key-1", "processing"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/pay", IdempotencyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "done"})
	})

	w := doPost(r, "key-1")
	assert.Equal(t, http.StatusConflict, w.Code)
}
