package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	zl, err := NewLogger(WithLogLevel("debug"), WithOutput(&buf))
	require.NoError(t, err)

	zl.Debug("fetched", zap.String("key", "crateA/x"), zap.Uint16("previous", 3))
	require.NoError(t, zl.Sync())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "debug", rec["level"])
	assert.Equal(t, "fetched", rec["msg"])
	assert.Equal(t, "crateA/x", rec["key"])
	assert.EqualValues(t, 3, rec["previous"])
	assert.Contains(t, rec, "ts")
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	zl, err := NewLogger(WithLogLevel("warn"), WithOutput(&buf))
	require.NoError(t, err)

	zl.Info("dropped")
	require.NoError(t, zl.Sync())
	assert.Empty(t, buf.String())
}

func TestNewLogger_Errors(t *testing.T) {
	_, err := NewLogger(WithLogLevel("loud"))
	require.Error(t, err)

	_, err = NewLogger(WithEncoding("xml"), WithOutput(&bytes.Buffer{}))
	require.Error(t, err)
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() { Must(NewLogger(WithLogLevel("loud"))) })
	assert.NotNil(t, Must(NewLogger()))
}
