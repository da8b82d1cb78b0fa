package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesStructuredText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Info("hello", "key", "value")
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestLoggerWarnIncludesCaller(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Warn("careful")
	if !strings.Contains(buf.String(), "caller=") {
		t.Fatalf("expected a caller attribute on a Warn record, got %q", buf.String())
	}
}

func TestLoggerDebugHasNoCaller(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debug("routine")
	if strings.Contains(buf.String(), "caller=") {
		t.Fatalf("did not expect a caller attribute on a Debug record, got %q", buf.String())
	}
}

func TestWithAddsPersistentFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false).With("component", "test")

	l.Info("msg")
	if !strings.Contains(buf.String(), "component=test") {
		t.Fatalf("expected With's fields on every subsequent record, got %q", buf.String())
	}
}
