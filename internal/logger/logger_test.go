package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("component", "pipeline").Msg("processing transaction")

	out := buf.String()
	if !strings.Contains(out, "processing transaction") {
		t.Errorf("expected log output to contain message, got: %s", out)
	}
	if !strings.Contains(out, "pipeline") {
		t.Errorf("expected log output to contain field value, got: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)

	got.Info().Msg("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Error("logger retrieved from context did not write to the original writer")
	}
}

func TestFromContextFallback(t *testing.T) {
	// Must not panic and must return a usable logger.
	log := FromContext(context.Background())
	log.Debug().Msg("fallback logger")
}
