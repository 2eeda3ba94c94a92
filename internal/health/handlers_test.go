package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alaminute/backend-prints/internal/health"
)

type stubChecker struct {
	mongoErr error
	redisErr error
}

func (s stubChecker) PingMongo(context.Context, time.Duration) error { return s.mongoErr }
func (s stubChecker) PingRedis(context.Context, time.Duration) error { return s.redisErr }

func TestLive(t *testing.T) {
	rec := httptest.NewRecorder()
	health.Handler{}.Live(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestReady(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)

	t.Run("all dependencies up", func(t *testing.T) {
		handler := health.Handler{Checker: stubChecker{}}
		rec := httptest.NewRecorder()
		handler.Ready(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var status map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		require.Equal(t, "ok", status["mongo"])
		require.Equal(t, "ok", status["redis"])
	})

	t.Run("mongo down", func(t *testing.T) {
		handler := health.Handler{Checker: stubChecker{mongoErr: errors.New("no reachable servers")}}
		rec := httptest.NewRecorder()
		handler.Ready(rec, req)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var status map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		require.Equal(t, "no reachable servers", status["mongo"])
		require.Equal(t, "ok", status["redis"])
	})

	t.Run("drain gate", func(t *testing.T) {
		handler := health.Handler{Checker: stubChecker{}}

		health.SetReady(false)
		t.Cleanup(func() { health.SetReady(true) })

		rec := httptest.NewRecorder()
		handler.Ready(rec, req)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
