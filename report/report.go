// Package report derives the accuracy figures of a completed pass.
package report

import (
	"context"
	"time"

	"github.com/go-gost/seermon/corpus"
	"github.com/go-gost/seermon/recorder"
)

// Report is the immutable outcome of a pass.
type Report struct {
	PassID            string    `json:"pass,omitempty" yaml:"pass,omitempty"`
	TotalSent         int       `json:"totalSent" yaml:"totalSent"`
	TotalCorrect      int       `json:"totalCorrect" yaml:"totalCorrect"`
	AccuracyRate      Rate      `json:"accuracyRate" yaml:"accuracyRate"`
	FalsePositiveRate Rate      `json:"falsePositiveRate" yaml:"falsePositiveRate"`
	FalseNegativeRate Rate      `json:"falseNegativeRate" yaml:"falseNegativeRate"`
	NumMalicious      int       `json:"numMalicious" yaml:"numMalicious"`
	NumBenign         int       `json:"numBenign" yaml:"numBenign"`
	NumFalsePositive  int       `json:"numFalsePositive" yaml:"numFalsePositive"`
	NumFalseNegative  int       `json:"numFalseNegative" yaml:"numFalseNegative"`
	Time              time.Time `json:"time" yaml:"time"`
}

// Compute scans c once. It does not check that every probe has a
// prediction; unset probes count as neither correct nor misclassified.
func Compute(c *corpus.Corpus) Report {
	var r Report
	for _, p := range c.Probes() {
		r.TotalSent++
		if p.Malicious() {
			r.NumMalicious++
		} else {
			r.NumBenign++
		}
		switch p.Outcome() {
		case corpus.OutcomeCorrect:
			r.TotalCorrect++
		case corpus.OutcomeFalsePositive:
			r.NumFalsePositive++
		case corpus.OutcomeFalseNegative:
			r.NumFalseNegative++
		}
	}

	r.AccuracyRate = NewRate(r.TotalCorrect, r.TotalSent)
	r.FalsePositiveRate = NewRate(r.NumFalsePositive, r.NumBenign)
	r.FalseNegativeRate = NewRate(r.NumFalseNegative, r.NumMalicious)
	return r
}

// ReportRecorderObject is a report tagged for a recorder.
type ReportRecorderObject struct {
	Report
	Recorder string `json:"recorder,omitempty"`
}

func (r *Report) Record(ctx context.Context, rec recorder.Recorder) error {
	if r == nil || rec == nil {
		return nil
	}
	return recorder.Record(ctx, rec, &ReportRecorderObject{
		Report:   *r,
		Recorder: recorder.RecorderReports,
	})
}
