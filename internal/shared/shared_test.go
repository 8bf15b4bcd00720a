package shared

import (
	"bytes"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("With Nil Writer", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger, got nil")
		}
	})

	t.Run("With Custom Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if buf.Len() == 0 {
			t.Error("expected log output to be written to buffer")
		}
	})

	t.Run("With Key Values", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "feed")
		logger.Info("tick")

		if !bytes.Contains(buf.Bytes(), []byte("component")) {
			t.Errorf("expected scoped key in output, got %s", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Error("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
}
