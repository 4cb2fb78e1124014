package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testCounter = NewCounter("test_pushes", "metrics", "counter exercised by push tests", []string{"kind"})

func TestPushDisabled(t *testing.T) {
	require.NoError(t, Push(context.Background(), zaptest.NewLogger(t), DefaultConfig(), "multisig", "ms"))
}

func TestPush(t *testing.T) {
	testCounter.WithLabelValues("push").Inc()

	var (
		requests atomic.Int32
		path     atomic.Value
		auth     atomic.Value
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		path.Store(r.URL.Path)
		auth.Store(r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	cfg := Config{PushURL: srv.URL, Headers: map[string]string{"X-Test": "yes"}}
	require.NoError(t, Push(context.Background(), zaptest.NewLogger(t), cfg, "multisig", "ms"))
	require.EqualValues(t, 1, requests.Load())
	require.Equal(t, "/metrics/job/multisig/network/ms", path.Load())
	require.Equal(t, "yes", auth.Load())
}

func TestPushFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cfg := Config{PushURL: srv.URL}
	require.ErrorContains(t, Push(context.Background(), zaptest.NewLogger(t), cfg, "multisig", "ms"), "push metrics")
}
