package saa

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCloser struct {
	err   error
	calls int
}

func (s *stubCloser) Close() error {
	s.calls++
	return s.err
}

func TestCloseWithLog(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{name: "clean close", err: nil, wantLog: false},
		{name: "failing close", err: errors.New("connection reset"), wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			c := &stubCloser{err: tt.err}

			CloseWithLog(c, logger, "concordance store")

			assert.Equal(t, 1, c.calls)
			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}
			out := buf.String()
			assert.Contains(t, out, "level=WARN")
			assert.Contains(t, out, "failed to close resource")
			assert.Contains(t, out, "concordance store")
			assert.Contains(t, out, "connection reset")
		})
	}
}

func TestCloseWithLogNil(t *testing.T) {
	var buf bytes.Buffer
	CloseWithLog(nil, slog.New(slog.NewTextHandler(&buf, nil)), "nothing")
	assert.Empty(t, buf.String())

	require.NotPanics(t, func() {
		CloseWithLog(&stubCloser{err: errors.New("x")}, nil, "default logger")
	})
}

func TestCloseWithLogConverter(t *testing.T) {
	conv, err := New(nil, WithLogger(quietLogger()))
	require.NoError(t, err)

	var buf bytes.Buffer
	CloseWithLog(conv, slog.New(slog.NewTextHandler(&buf, nil)), "converter")
	assert.Empty(t, buf.String(), "a converter without a store closes cleanly")
}
