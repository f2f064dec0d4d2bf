package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const banner = "##############################################"

var (
	ErrUnknownFormat = errors.New("report: unknown format")
)

// Write renders r to w in the named format. The empty format is text.
func Write(w io.Writer, r *Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return WriteText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	fmt.Fprintln(&b, banner)
	fmt.Fprintln(&b, "RESULTS:")
	fmt.Fprintln(&b, "--------")
	if r.PassID != "" {
		fmt.Fprintf(&b, "Pass: %s\n", r.PassID)
	}
	fmt.Fprintf(&b, "Total packets sent: %d\n", r.TotalSent)
	fmt.Fprintf(&b, "Total correctly classified: %d\n", r.TotalCorrect)
	fmt.Fprintf(&b, "Percent correctly classified: %s\n", r.AccuracyRate)
	fmt.Fprintf(&b, "False negative rate: %s\n", r.FalseNegativeRate)
	fmt.Fprintf(&b, "False positive rate: %s\n", r.FalsePositiveRate)
	fmt.Fprintln(&b, banner)

	_, err := io.WriteString(w, b.String())
	return err
}
