package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admetric/campaignml/pkg/log"
)

func TestZerologProviderEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	provider := log.NewZerologProviderWithWriter(&buf, zerolog.DebugLevel)

	logger := provider.GetLoggerWithName("training").With(
		log.ComponentKey, "trainer",
		log.ModelNameKey, "ridge",
	)
	logger.Info("Training model", log.SamplesKey, 120)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "training", entry["logger"])
	assert.Equal(t, "trainer", entry[log.ComponentKey])
	assert.Equal(t, "ridge", entry[log.ModelNameKey])
	assert.Equal(t, float64(120), entry[log.SamplesKey])
	assert.Equal(t, "Training model", entry["message"])
}

func TestZerologProviderRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := log.NewZerologProviderWithWriter(&buf, zerolog.WarnLevel)

	logger := provider.GetLoggerWithName("training")
	logger.Debug("hidden")
	logger.Info("also hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("visible")
	assert.NotZero(t, buf.Len())
}

func TestToLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, log.ToLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, log.ToLogLevel("WARNING"))
	assert.Equal(t, zerolog.ErrorLevel, log.ToLogLevel("error"))
	assert.Equal(t, zerolog.Disabled, log.ToLogLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, log.ToLogLevel("anything-else"))
}
