// Package media is the clip contract the compressor depends on, plus an
// implementation backed by the ffmpeg and ffprobe binaries.
//
// A Clip is opened from a path, can be resized to a target width with a
// proportional height, written to a file through the encoder, and must be
// released with Close once the caller is done with it.
package media

import (
	"context"
	"math"
	"time"
)

// Library opens clips.
type Library interface {
	Open(ctx context.Context, path string) (Clip, error)
}

// Clip is an open handle to a decodable video.
type Clip interface {
	Width() int
	Height() int
	Duration() time.Duration
	// Resized returns a new clip scaled to width with a proportional height.
	// The new clip must be released separately.
	Resized(width int) (Clip, error)
	// WriteFile encodes the clip to path, overwriting any existing file.
	WriteFile(ctx context.Context, path string, opts WriteOptions) error
	// Close releases the clip. Calling Close more than once is a no-op.
	Close() error
}

// WriteOptions are passed through to the encoder.
type WriteOptions struct {
	Codec      string
	AudioCodec string
	Bitrate    string
	Preset     string
	// ExtraParams are flag/value pairs such as ["-crf", "23"].
	ExtraParams []string
}

// ProportionalHeight returns round(targetWidth * height / width), never less than 1.
// It returns 0 when width is not positive.
func ProportionalHeight(targetWidth, width, height int) int {
	if width <= 0 {
		return 0
	}
	h := int(math.Round(float64(targetWidth) * float64(height) / float64(width)))
	if h < 1 {
		return 1
	}
	return h
}

// evenDimension rounds n down to an even number, at least 2.
// libx264 with 4:2:0 chroma rejects odd frame sizes.
func evenDimension(n int) int {
	n -= n % 2
	if n < 2 {
		return 2
	}
	return n
}
