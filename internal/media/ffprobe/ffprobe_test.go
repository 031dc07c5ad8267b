package ffprobe_test

import (
	"encoding/json"
	"testing"

	"mixdown/internal/media/ffprobe"
)

func TestDurationSecondsPrefersFormat(t *testing.T) {
	r := ffprobe.Result{
		Streams: []ffprobe.Stream{{Duration: "99.9"}},
		Format:  ffprobe.Format{Duration: "123.456"},
	}
	if got := r.DurationSeconds(); got != 123.456 {
		t.Fatalf("unexpected duration: %v", got)
	}
}

func TestDurationSecondsFallsBackToStreams(t *testing.T) {
	r := ffprobe.Result{
		Streams: []ffprobe.Stream{{Duration: "N/A"}, {Duration: "42.5"}},
		Format:  ffprobe.Format{Duration: "N/A"},
	}
	if got := r.DurationSeconds(); got != 42.5 {
		t.Fatalf("unexpected duration: %v", got)
	}
}

func TestDurationSecondsNothingReported(t *testing.T) {
	r := ffprobe.Result{
		Streams: []ffprobe.Stream{{Duration: ""}},
		Format:  ffprobe.Format{Duration: "N/A"},
	}
	if got := r.DurationSeconds(); got != 0 {
		t.Fatalf("expected zero, got %v", got)
	}
}

func TestResultDecodesEngineJSON(t *testing.T) {
	payload := `{
  "streams": [{"duration": "12.000000"}, {"duration": "N/A"}],
  "format": {"duration": "12.050000"}
}`
	var r ffprobe.Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := r.DurationSeconds(); got != 12.05 {
		t.Fatalf("unexpected duration: %v", got)
	}
}
