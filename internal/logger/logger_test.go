package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("filing_id", "2024-01-001").Msg("filing processed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "filing processed", entry["message"])
	assert.Equal(t, "2024-01-001", entry["filing_id"])
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("from context")

	assert.Contains(t, buf.String(), "from context")
}

func TestFromContext_MissingLoggerIsNop(t *testing.T) {
	log := FromContext(context.Background())
	log.Info().Msg("dropped") // must not panic
}
