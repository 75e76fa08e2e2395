package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelWarn)
	l.Debug("too low")
	l.Info("also too low")
	l.Warn("shown")
	l.Error("also shown")
	out := buf.String()
	if strings.Contains(out, "too low") {
		t.Errorf("lines below level were written: %q", out)
	}
	if !strings.Contains(out, "WARN shown") || !strings.Contains(out, "ERROR also shown") {
		t.Errorf("expected lines missing: %q", out)
	}
}

func TestWriterLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelDebug)
	l.Info("checking", String("file", "a.txt"), Int("count", 3), Err(errors.New("boom")))
	out := buf.String()
	for _, want := range []string{"file=a.txt", "count=3", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPackageLoggerSwap(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewWriterLogger(&buf, LevelDebug))
	defer SetLogger(nil)
	Warn("global line")
	if !strings.Contains(buf.String(), "global line") {
		t.Errorf("package logger did not write: %q", buf.String())
	}
	SetLogger(nil)
	Warn("discarded")
	if strings.Contains(buf.String(), "discarded") {
		t.Error("null logger should discard")
	}
}
