// Package logging_test contains unit tests for logger setup and component
// tagging.
package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/recdata/logging"
)

// TestWithComponentTagsEvents verifies that component child loggers stamp
// every event with the component field.
func TestWithComponentTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(zerolog.New(&buf))
	defer logging.SetLogger(prev)

	log := logging.WithComponent("dataset")
	log.Warn().Str("attribute", "rating").Msg("degenerate attribute data")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	require.Equal(t, "dataset", ev["component"])
	require.Equal(t, "rating", ev["attribute"])
	require.Equal(t, "warn", ev["level"])
}

// TestSetupUnknownLevelFallsBack verifies the info fallback for bogus level
// names.
func TestSetupUnknownLevelFallsBack(t *testing.T) {
	prev := logging.Logger()
	defer logging.SetLogger(prev)

	logging.Setup("definitely-not-a-level", false)
	require.Equal(t, zerolog.InfoLevel, logging.Logger().GetLevel())
}
