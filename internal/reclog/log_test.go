package reclog

import (
	"bytes"
	"strings"
	"testing"
)

func TestFilterDropsBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	h := NewHelper(NewFilter(NewStdLogger(&buf), LevelWarn))

	h.Debugf("should not appear")
	h.Infof("should not appear either")
	h.Warnf("heads up: %d", 42)
	h.Errorf("boom")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("filter let a below-minimum entry through: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "heads up: 42") {
		t.Fatalf("expected WARN entry in output, got %q", out)
	}
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "boom") {
		t.Fatalf("expected ERROR entry in output, got %q", out)
	}
}

func TestNewHelperNilLoggerDoesNotPanic(t *testing.T) {
	h := NewHelper(nil)
	h.Warnf("fine")
}
