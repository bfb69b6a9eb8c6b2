package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGenerateTrackID(t *testing.T) {
	t.Run("uniqueness under rapid calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := GenerateTrackID()
			if id == "" {
				t.Fatal("expected a non-empty ID")
			}
			if seen[id] {
				t.Fatalf("duplicate ID after %d calls: %s", i, id)
			}
			seen[id] = true
		}
	})

	t.Run("roughly monotonic", func(t *testing.T) {
		// The leading component is a base-36 timestamp, so IDs generated
		// later never sort before IDs generated earlier by more than the
		// suffix width.
		first := GenerateTrackID()
		second := GenerateTrackID()
		if first[:8] > second[:8] {
			t.Errorf("expected time-ordered prefixes, got %s then %s", first, second)
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "key", "value")

		out := buf.String()
		if !strings.Contains(out, "hello") || !strings.Contains(out, "value") {
			t.Errorf("unexpected log output: %s", out)
		}
	})

	t.Run("WithLogger carries key-value pairs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "store")
		logger.Info("ready")

		if !strings.Contains(buf.String(), "store") {
			t.Errorf("expected component field in output: %s", buf.String())
		}
	})

	t.Run("SetLogLevel filters below the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)

		logger.Info("quiet")
		logger.Warn("loud")

		out := buf.String()
		if strings.Contains(out, "quiet") {
			t.Errorf("info should be filtered at warn level: %s", out)
		}
		if !strings.Contains(out, "loud") {
			t.Errorf("warn should pass at warn level: %s", out)
		}
	})
}
