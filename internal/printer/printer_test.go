package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/dir-grep/internal/ringbuf"
	"github.com/bethropolis/dir-grep/internal/scanner"
)

func TestEmit_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf)

	require.NoError(t, p.Emit(scanner.Event{Source: "a.txt", Line: 0, Text: "foo"}))
	require.NoError(t, p.Emit(scanner.Event{Source: "a.txt", Line: 2, Text: "foobar"}))
	require.NoError(t, p.Finalize())

	assert.Equal(t, "a.txt +0 |foo\na.txt +2 |foobar\n", buf.String())
}

func TestEmit_Context(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithContext(true)

	require.NoError(t, p.Emit(scanner.Event{Source: "a.txt", Line: 0, Text: "foo"}))
	require.NoError(t, p.Emit(scanner.Event{
		Source:  "a.txt",
		Line:    2,
		Text:    "foobar",
		Context: []ringbuf.Line{{Number: 1, Text: "bar"}},
	}))

	want := strings.Join([]string{
		"--",
		"a.txt +0 |foo",
		"--",
		"a.txt +1 |bar",
		"a.txt +2 |foobar",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestEmit_ContextIgnoredWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf)
	require.NoError(t, p.Emit(scanner.Event{
		Source:  "x",
		Line:    5,
		Text:    "t",
		Context: []ringbuf.Line{{Number: 4, Text: "c"}},
	}))
	assert.Equal(t, "x +5 |t\n", buf.String())
}

func TestEmit_Colors(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(true)
	require.NoError(t, p.Emit(scanner.Event{Source: "a.txt", Line: 7, Text: "foo"}))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "a.txt")
	assert.True(t, strings.HasSuffix(out, " |foo\n"))
}

func TestEmit_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithJSON(true).WithContext(true)

	require.NoError(t, p.Emit(scanner.Event{Source: "a.txt", Line: 0, Text: "foo"}))
	require.NoError(t, p.Emit(scanner.Event{
		Source:  "a.txt",
		Line:    2,
		Text:    "foobar",
		Context: []ringbuf.Line{{Number: 1, Text: "bar"}},
	}))
	require.NoError(t, p.Finalize())

	var got []scanner.Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "foobar", got[1].Text)
	assert.Equal(t, []ringbuf.Line{{Number: 1, Text: "bar"}}, got[1].Context)
	assert.NotContains(t, buf.String(), Separator+"\n")
}

func TestFinalize_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithJSON(true)
	require.NoError(t, p.Finalize())
	assert.Equal(t, "[]\n", buf.String())
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEmit_WriteError(t *testing.T) {
	closed := errors.New("broken pipe")
	p := New().WithOutput(failingWriter{closed})

	err := p.Emit(scanner.Event{Source: "a", Line: 1, Text: "x"})
	assert.ErrorIs(t, err, closed)

	err = New().WithOutput(failingWriter{closed}).WithContext(true).Emit(scanner.Event{Source: "a"})
	assert.ErrorIs(t, err, closed)
}
