package recorder

import (
	"context"
	"encoding/json"
	"time"
)

const (
	RecorderVerdicts = "recorder.monitor.verdicts"
	RecorderReports  = "recorder.monitor.reports"
)

// Recorder persists opaque records.
type Recorder interface {
	Record(ctx context.Context, b []byte) error
}

// VerdictRecorderObject describes one received verdict unit.
type VerdictRecorderObject struct {
	Pass       string        `json:"pass"`
	Transport  string        `json:"transport,omitempty"`
	RemoteAddr string        `json:"remote,omitempty"`
	Payload    string        `json:"payload"`
	Prediction string        `json:"prediction,omitempty"`
	Truth      string        `json:"truth,omitempty"`
	Matched    bool          `json:"matched"`
	Correct    bool          `json:"correct"`
	Err        string        `json:"err,omitempty"`
	Latency    time.Duration `json:"latency,omitempty"`
	Time       time.Time     `json:"time"`
}

func (p *VerdictRecorderObject) Record(ctx context.Context, r Recorder) error {
	if p == nil || r == nil || p.Time.IsZero() {
		return nil
	}
	return Record(ctx, r, p)
}

// Record marshals v as JSON and hands it to r.
func Record(ctx context.Context, r Recorder, v any) error {
	if r == nil || v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return r.Record(ctx, data)
}
