package compressor

import (
	"path/filepath"
	"strings"

	"github.com/heyjunin/vidcompress/pkg/media"
)

// Fixed encoder settings, not exposed as options.
const (
	VideoCodec = "libx264"
	AudioCodec = "aac"
	Preset     = "medium"
	CRF        = "23"
)

const (
	DefaultWidth   = 1280
	DefaultBitrate = "500k"

	outputSuffix    = "_compressed"
	outputExtension = ".mp4"
)

// Options contains the user-tunable compression parameters.
// Values are not range-checked here; the media library reports invalid ones.
type Options struct {
	Width   int
	Bitrate string
	// SkipInspect disables reading back the encoded MP4.
	SkipInspect bool
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Bitrate == "" {
		o.Bitrate = DefaultBitrate
	}
	return o
}

// OutputPath derives the output file: the input without its extension plus
// "_compressed.mp4", in the same directory, whatever the input container.
func OutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + outputSuffix + outputExtension
}

// TargetHeight is round(targetWidth * height / width).
func TargetHeight(targetWidth, width, height int) int {
	return media.ProportionalHeight(targetWidth, width, height)
}
