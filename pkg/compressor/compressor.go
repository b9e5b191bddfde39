// Package compressor re-encodes one video to a smaller resolution and
// bitrate and measures how much space that saved.
package compressor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ideamans/go-l10n"

	"github.com/heyjunin/vidcompress/pkg/errors"
	"github.com/heyjunin/vidcompress/pkg/inspect"
	"github.com/heyjunin/vidcompress/pkg/logger"
	"github.com/heyjunin/vidcompress/pkg/media"
	"github.com/heyjunin/vidcompress/pkg/report"
)

// Result describes a finished compression.
type Result struct {
	InputPath  string
	OutputPath string
	Width      int
	Height     int
	Bitrate    string
	Stats      report.Stats
	// Encoded is nil when the output could not be inspected.
	Encoded *inspect.Info
}

// Summary converts the result for report.Write.
func (r *Result) Summary() report.Summary {
	return report.Summary{
		Input:   r.InputPath,
		Output:  r.OutputPath,
		Width:   r.Width,
		Height:  r.Height,
		Bitrate: r.Bitrate,
		Stats:   r.Stats,
		Encoded: r.Encoded,
	}
}

// Compressor handles one video at a time.
type Compressor struct {
	library media.Library
	options Options
	out     io.Writer
	logger  logger.Logger
	inspect func(path string) (*inspect.Info, error)
}

// New creates a Compressor. Console progress lines go to out.
func New(library media.Library, options Options, out io.Writer, log logger.Logger) *Compressor {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logger.NewLogger()
	}
	return &Compressor{
		library: library,
		options: options.withDefaults(),
		out:     out,
		logger:  log,
		inspect: inspect.File,
	}
}

// Compress encodes inputPath to OutputPath(inputPath) and returns the size statistics.
// Both clips are released before Compress returns, whether encoding succeeded or not.
func (c *Compressor) Compress(ctx context.Context, inputPath string) (*Result, error) {
	outputPath := OutputPath(inputPath)

	width, height, err := c.encode(ctx, inputPath, outputPath)
	if err != nil {
		return nil, err
	}

	stats, err := measure(inputPath, outputPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Width:      width,
		Height:     height,
		Bitrate:    c.options.Bitrate,
		Stats:      stats,
	}

	if !c.options.SkipInspect {
		info, err := c.inspect(outputPath)
		if err != nil {
			c.logger.Warn("Could not inspect encoded output", "compressor", map[string]interface{}{
				"output": outputPath,
				"error":  err.Error(),
			})
		} else {
			result.Encoded = info
		}
	}

	c.logger.Info("Compression finished", "compressor", map[string]interface{}{
		"input":             inputPath,
		"output":            outputPath,
		"original_bytes":    stats.OriginalBytes,
		"compressed_bytes":  stats.CompressedBytes,
		"reduction_percent": stats.ReductionPercent,
	})

	return result, nil
}

// encode runs decode, scale and encode. Every clip it acquires is released on return.
func (c *Compressor) encode(ctx context.Context, inputPath, outputPath string) (int, int, error) {
	fmt.Fprintln(c.out, l10n.F("Loading video: %s", inputPath))

	clip, err := c.library.Open(ctx, inputPath)
	if err != nil {
		return 0, 0, err
	}
	defer c.release(clip, "original")

	targetHeight := TargetHeight(c.options.Width, clip.Width(), clip.Height())

	resized, err := clip.Resized(c.options.Width)
	if err != nil {
		return 0, 0, err
	}
	defer c.release(resized, "resized")

	fmt.Fprintln(c.out, l10n.F("Compressing video... New resolution: %dx%d, bitrate: %s",
		c.options.Width, targetHeight, c.options.Bitrate))

	c.logger.Info("Encoding", "compressor", map[string]interface{}{
		"input":         inputPath,
		"output":        outputPath,
		"source_width":  clip.Width(),
		"source_height": clip.Height(),
		"width":         c.options.Width,
		"height":        targetHeight,
		"bitrate":       c.options.Bitrate,
	})

	err = resized.WriteFile(ctx, outputPath, media.WriteOptions{
		Codec:       VideoCodec,
		AudioCodec:  AudioCodec,
		Bitrate:     c.options.Bitrate,
		Preset:      Preset,
		ExtraParams: []string{"-crf", CRF},
	})
	if err != nil {
		return 0, 0, err
	}

	return c.options.Width, targetHeight, nil
}

func (c *Compressor) release(clip media.Clip, name string) {
	if err := clip.Close(); err != nil {
		c.logger.Warn("Failed to release clip", "compressor", map[string]interface{}{
			"clip":  name,
			"error": err.Error(),
		})
	}
}

func measure(inputPath, outputPath string) (report.Stats, error) {
	orig, err := os.Stat(inputPath)
	if err != nil {
		return report.Stats{}, errors.FromCode(err, errors.SystemError, errors.ErrStatFailed)
	}
	comp, err := os.Stat(outputPath)
	if err != nil {
		return report.Stats{}, errors.FromCode(err, errors.SystemError, errors.ErrStatFailed)
	}
	return report.NewStats(orig.Size(), comp.Size()), nil
}
