package applog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
)

func TestNewJSONEmitsParsableFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, zerolog.InfoLevel)
	log.Info().Str("op", "pack").Msg("done")
	assert.Contains(t, buf.String(), `"op":"pack"`)
	assert.Contains(t, buf.String(), `"message":"done"`)
}

func TestNewConsoleIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, zerolog.InfoLevel)
	log.Info().Msg("hello")
	assert.True(t, strings.Contains(buf.String(), "hello"))
}

func TestNewStderrFallsBackOnBadLevel(t *testing.T) {
	log := NewStderr("not-a-level", true)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}
