package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	lg, ok := logger.New().(*logger.Logger)
	if !ok {
		t.Fatal("expected New() to return *logger.Logger")
	}
	var buf bytes.Buffer
	lg.SetOutput(&buf)
	return lg, &buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Info("descriptor built")

	out := buf.String()
	if !strings.Contains(out, "descriptor built") {
		t.Errorf("expected output to contain the message, got: %s", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("expected INFO level, got: %s", out)
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Warn("falling back")

	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected WARN level, got: %s", buf.String())
	}
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Error(zerr.New("resource not found"))

	out := buf.String()
	if !strings.Contains(out, "resource not found") {
		t.Errorf("expected error message, got: %s", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Errorf("expected ERROR level, got: %s", out)
	}
}
