package logio_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuslvm/tusl/internal/logio"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestPrintfFormatsLevelAndAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	var log logio.Logger
	log.SetOutput(nopCloser{&buf})

	log.Printf("TRACE", "call %s", "dup")
	assert.Equal(t, "TRACE: call dup\n", buf.String())
}

func TestErrorfSetsExitCode(t *testing.T) {
	var buf bytes.Buffer
	var log logio.Logger
	log.SetOutput(nopCloser{&buf})

	require.Equal(t, 0, log.ExitCode())
	log.Errorf("boom")
	assert.Equal(t, 1, log.ExitCode())
	assert.Contains(t, buf.String(), "ERROR: boom")
}

func TestErrorIfIgnoresNil(t *testing.T) {
	var buf bytes.Buffer
	var log logio.Logger
	log.SetOutput(nopCloser{&buf})

	log.ErrorIf(nil)
	assert.Equal(t, 0, log.ExitCode())
	log.ErrorIf(errors.New("failed"))
	assert.Equal(t, 1, log.ExitCode())
}

func TestLeveledfReturnsBoundSink(t *testing.T) {
	var buf bytes.Buffer
	var log logio.Logger
	log.SetOutput(nopCloser{&buf})

	sink := log.Leveledf("DUMP")
	sink("word %d", 7)
	assert.Equal(t, "DUMP: word 7\n", buf.String())
}

func TestWriterBuffersUntilNewline(t *testing.T) {
	var lines []string
	lw := &logio.Writer{Logf: func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}}

	_, err := lw.Write([]byte("partial"))
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = lw.Write([]byte(" line\nsecond\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"partial line", "second"}, lines)
}

func TestWriterSyncFlushesTrailingPartialLine(t *testing.T) {
	var lines []string
	lw := &logio.Writer{Logf: func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}}

	_, err := lw.Write([]byte("no newline yet"))
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, lw.Close())
	assert.Equal(t, []string{"no newline yet"}, lines)
}
