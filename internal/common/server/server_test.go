package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/app-registry/internal/common/logger"
)

func TestRun_StopsOnCancelAndRunsHooks(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "error")
	srv := NewServer(ServerConfig{Addr: "127.0.0.1:0"}, http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())

	var order []int
	hooks := []ShutdownHook{
		func(context.Context) error { order = append(order, 1); return nil },
		func(context.Context) error { order = append(order, 2); return nil },
	}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, log, "test", hooks) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []int{1, 2}, order)
}

func TestRun_ReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	log := logger.NewWithWriter(io.Discard, "test", "error")
	srv := NewServer(ServerConfig{Addr: ln.Addr().String()}, http.NotFoundHandler())

	hookRan := false
	err = Run(context.Background(), srv, log, "test", []ShutdownHook{
		func(context.Context) error { hookRan = true; return nil },
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start test service")
	assert.False(t, hookRan)
}

func TestDefaultServerConfig(t *testing.T) {
	assert.Equal(t, ":9090", DefaultServerConfig("9090").Addr)
	assert.Equal(t, ":8080", DefaultServerConfig("").Addr)
}
