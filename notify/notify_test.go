package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jrsteele09/betatips/internal/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDurations(t *testing.T) {
	assert.Equal(t, SuccessDuration, New(LevelSuccess, "ok").Duration)
	assert.Equal(t, ErrorDuration, New(LevelError, "bad").Duration)
	assert.Equal(t, InfoDuration, New(LevelInfo, "fyi").Duration)
	assert.Equal(t, WarnDuration, New(LevelWarn, "hmm").Duration)
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	Error(NewConsole(&buf, true), "Login failed")
	assert.Equal(t, "✗ Login failed\n", buf.String())

	buf.Reset()
	Success(NewConsole(&buf, false), "Saved")
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, utils.Green))
	assert.Contains(t, out, "✓ Saved"+utils.ResetColor)
}

func TestLogAndMulti(t *testing.T) {
	var buf bytes.Buffer
	rec := &Recorder{}
	n := Multi{NewLog(zerolog.New(&buf)), rec, Discard{}}

	Warn(n, "stale data")

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"message":"stale data"`)
	require.Len(t, rec.All(), 1)
	assert.Equal(t, LevelWarn, rec.Last().Level)

	rec.Reset()
	assert.Empty(t, rec.All())
	assert.Equal(t, Notification{}, rec.Last())
}
