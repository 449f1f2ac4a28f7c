package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/handler"
	"github.com/specmock/specmock/internal/logger"
)

func TestNewServer(t *testing.T) {
	t.Run("no configured transports is a startup error", func(t *testing.T) {
		_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

		assert.ErrorIs(t, err, errNoServersAreCreated)
	})

	t.Run("gRPC address alone is enough", func(t *testing.T) {
		srv, err := NewServer(&handler.Handlers{}, config.Server{GRPCAddress: "localhost:3200"}, logger.Nop())

		require.NoError(t, err)
		assert.NotNil(t, srv)
	})
}
