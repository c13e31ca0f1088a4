package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNewWithWriterRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "warn")

	log.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	log.Warn().Str("key", "expenses").Msg("fallback")
	require.Contains(t, buf.String(), `"key":"expenses"`)
	require.Contains(t, buf.String(), "fallback")
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, "info"))

	log := FromContext(ctx)
	log.Info().Msg("test")
	require.NotZero(t, buf.Len())
}

func TestFromContextDefaultIsSilent(t *testing.T) {
	log := FromContext(context.Background())
	require.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(NewWithWriter(buf, "info"), map[string]interface{}{"file": "jan.csv", "rows": 3})
	log.Info().Msg("imported")
	require.Contains(t, buf.String(), `"file":"jan.csv"`)
	require.Contains(t, buf.String(), `"rows":3`)
}
