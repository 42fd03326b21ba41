package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devforge/devtools-server/internal/httpapi"
)

func TestNewRejectsNilHandler(t *testing.T) {
	_, err := New(":0", nil, nil, nil, 0)
	assert.Error(t, err)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	health := httpapi.NewHealth()

	a, err := New("127.0.0.1:0", http.NewServeMux(), health, logger, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunFailsOnBadListenAddress(t *testing.T) {
	a, err := New("256.256.256.256:99999", http.NewServeMux(), nil, nil, time.Second)
	require.NoError(t, err)

	assert.Error(t, a.Run(context.Background()))
}
