// Package report computes size-reduction statistics and renders the
// end-of-run summary as console text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ideamans/go-l10n"
	"gopkg.in/yaml.v3"

	"github.com/heyjunin/vidcompress/pkg/inspect"
)

const bytesPerMB = 1024 * 1024

// Format selects how a Summary is rendered.
type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// ParseFormat converts a string to a Format. An empty string is TextFormat.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case TextFormat, JSONFormat, YAMLFormat:
		return f, nil
	case "":
		return TextFormat, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Stats compares the input and output file sizes.
type Stats struct {
	OriginalBytes    int64   `json:"original_bytes" yaml:"original_bytes"`
	CompressedBytes  int64   `json:"compressed_bytes" yaml:"compressed_bytes"`
	OriginalMB       float64 `json:"original_mb" yaml:"original_mb"`
	CompressedMB     float64 `json:"compressed_mb" yaml:"compressed_mb"`
	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent"`
}

// NewStats computes sizes in binary megabytes and the reduction
// (original - compressed) / original * 100. The reduction is negative when
// the output grew and 0 when the original is empty.
func NewStats(originalBytes, compressedBytes int64) Stats {
	s := Stats{
		OriginalBytes:   originalBytes,
		CompressedBytes: compressedBytes,
		OriginalMB:      float64(originalBytes) / bytesPerMB,
		CompressedMB:    float64(compressedBytes) / bytesPerMB,
	}
	if originalBytes > 0 {
		s.ReductionPercent = float64(originalBytes-compressedBytes) / float64(originalBytes) * 100
	}
	return s
}

// Summary is everything reported about one compression run.
type Summary struct {
	Input   string        `json:"input" yaml:"input"`
	Output  string        `json:"output" yaml:"output"`
	Width   int           `json:"width" yaml:"width"`
	Height  int           `json:"height" yaml:"height"`
	Bitrate string        `json:"bitrate" yaml:"bitrate"`
	Stats   Stats         `json:"stats" yaml:"stats"`
	Encoded *inspect.Info `json:"encoded,omitempty" yaml:"encoded,omitempty"`
}

// Write renders s to w in the given format.
func Write(w io.Writer, format Format, s Summary) error {
	switch format {
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case YAMLFormat:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(s)
	default:
		return WriteText(w, s.Stats)
	}
}

// WriteText prints the console summary: sizes with two decimals and the
// reduction with one.
func WriteText(w io.Writer, st Stats) error {
	_, err := fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n",
		l10n.T("✅ Done!"),
		l10n.F("Original size: %.2f MB", st.OriginalMB),
		l10n.F("Compressed size: %.2f MB", st.CompressedMB),
		l10n.F("Reduction: %.1f%%", st.ReductionPercent),
	)
	return err
}
