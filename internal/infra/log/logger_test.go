package log

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "prod")
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line must be dropped outside dev, got %q", buf.String())
	}

	buf.Reset()
	logger = newLogger(&buf, "dev")
	logger.Debug().Msg("visible")
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if line["message"] != "visible" || line["service"] != "start-gate" {
		t.Fatalf("unexpected line: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Fatal("expected timestamp field")
	}
}
