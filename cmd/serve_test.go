package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-locator/internal/config"
	"github.com/sells-group/geo-locator/internal/model"
)

func TestServeCommand_MissingAPIKey(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = &config.Config{}
	cfg.Server.Port = 8080
	cfg.Pipeline.BatchSize = 5
	cfg.Pipeline.CallTimeoutSecs = 10

	serveCmd.SetContext(context.Background())
	err := serveCmd.RunE(serveCmd, nil)
	require.Error(t, err)

	var ce *model.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "geocode.api_key", ce.Field)
}
