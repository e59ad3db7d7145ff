package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestBackendsWriteStructuredFields(t *testing.T) {
	backends := []string{BackendSlog, BackendZap, BackendZerolog}

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: LevelInfo, Format: "json", Backend: backend, Output: &buf})

			log.With(String("component", "test")).Info("computed trends",
				String("range", "30days"),
				Int("series", 3),
			)

			var entry map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
				t.Fatalf("output is not a single JSON object: %v (%q)", err, buf.String())
			}
			if entry["msg"] != "computed trends" && entry["message"] != "computed trends" {
				t.Errorf("message missing: %v", entry)
			}
			if entry["range"] != "30days" {
				t.Errorf("range = %v, want 30days", entry["range"])
			}
			if entry["series"] != float64(3) {
				t.Errorf("series = %v, want 3", entry["series"])
			}
			if entry["component"] != "test" {
				t.Errorf("component = %v, want test", entry["component"])
			}
		})
	}
}

func TestBackendsRespectLevel(t *testing.T) {
	for _, backend := range []string{BackendSlog, BackendZap, BackendZerolog} {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: LevelWarn, Format: "json", Backend: backend, Output: &buf})

			log.Info("dropped")
			if buf.Len() != 0 {
				t.Errorf("info entry written at warn level: %q", buf.String())
			}

			log.Warn("kept")
			if !strings.Contains(buf.String(), "kept") {
				t.Errorf("warn entry missing: %q", buf.String())
			}
			if log.Level() != LevelWarn {
				t.Errorf("Level() = %v, want warn", log.Level())
			}
		})
	}
}

func TestWithContextAddsRequestAndPatient(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelInfo, Backend: BackendSlog, Output: &buf})

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithPatientID(ctx, "patient-007")
	ctx = WithLogger(ctx, base)

	Ctx(ctx).Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) {
		t.Errorf("request_id missing: %s", out)
	}
	if !strings.Contains(out, `"patient_id":"patient-007"`) {
		t.Errorf("patient_id missing: %s", out)
	}
}

func TestWithRequestIDGeneratesID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if RequestIDFromContext(ctx) == "" {
		t.Error("expected a generated request id")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
