package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/heyjunin/vidcompress/pkg/errors"
	"github.com/heyjunin/vidcompress/pkg/logger"
	"github.com/heyjunin/vidcompress/pkg/progress"
)

// Options configures an FFmpeg library.
type Options struct {
	// FFmpegBinary defaults to "ffmpeg" on PATH.
	FFmpegBinary string
	// Stderr receives the encoder's own output. Defaults to os.Stderr.
	// Ignored while Progress is set.
	Stderr io.Writer
	// Progress, if set, replaces the encoder's output with a bar driven by it.
	Progress progress.Reporter
	// Probe defaults to FFprobe.
	Probe ProbeFunc
}

// FFmpeg is a Library that probes with ffprobe and encodes with ffmpeg.
type FFmpeg struct {
	options Options
	logger  logger.Logger
}

// NewFFmpeg creates an FFmpeg library with default dependencies
func NewFFmpeg(options Options) *FFmpeg {
	return NewFFmpegWithLogger(options, logger.NewLogger())
}

// NewFFmpegWithLogger creates an FFmpeg library with a custom logger
func NewFFmpegWithLogger(options Options, log logger.Logger) *FFmpeg {
	if options.FFmpegBinary == "" {
		options.FFmpegBinary = "ffmpeg"
	}
	if options.Stderr == nil {
		options.Stderr = os.Stderr
	}
	if options.Probe == nil {
		options.Probe = FFprobe
	}
	return &FFmpeg{options: options, logger: log}
}

// Open probes path and returns a clip for it.
func (f *FFmpeg) Open(ctx context.Context, path string) (Clip, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, errors.FileNotFoundError, errors.GetErrorMessage(errors.ErrFileNotFound), errors.ErrFileNotFound)
	}

	data, err := f.options.Probe(ctx, path)
	if err != nil {
		return nil, classifyProbeError(path, err)
	}

	info, err := ParseProbe(path, data)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Probed input", "media", map[string]interface{}{
		"path":      path,
		"width":     info.Width,
		"height":    info.Height,
		"duration":  info.Duration.Seconds(),
		"codec":     info.VideoCodec,
		"has_audio": info.HasAudio,
	})

	return &ffmpegClip{
		lib:    f,
		info:   *info,
		width:  info.Width,
		height: info.Height,
	}, nil
}

// ffmpegClip holds no OS resources; released only guards against use after Close.
type ffmpegClip struct {
	lib      *FFmpeg
	info     Info
	width    int
	height   int
	scaled   bool
	released bool
}

func (c *ffmpegClip) Width() int              { return c.width }
func (c *ffmpegClip) Height() int             { return c.height }
func (c *ffmpegClip) Duration() time.Duration { return c.info.Duration }

func (c *ffmpegClip) Resized(width int) (Clip, error) {
	if c.released {
		return nil, errors.FromCode(nil, errors.EncodeError, errors.ErrClipReleased)
	}
	if width <= 0 {
		return nil, errors.New(errors.ValidationError, errors.GetErrorMessage(errors.ErrInvalidWidth),
			"width="+strconv.Itoa(width), errors.ErrInvalidWidth)
	}
	height := ProportionalHeight(width, c.info.Width, c.info.Height)
	return &ffmpegClip{
		lib:    c.lib,
		info:   c.info,
		width:  width,
		height: height,
		scaled: true,
	}, nil
}

// WriteFile finishes the progress reporter, if any, on every return: Complete
// on success and Abort on failure.
func (c *ffmpegClip) WriteFile(ctx context.Context, path string, opts WriteOptions) (err error) {
	if rep := c.lib.options.Progress; rep != nil {
		defer func() {
			if err != nil {
				rep.Abort()
			} else {
				rep.Complete()
			}
		}()
	}

	if c.released {
		return errors.FromCode(nil, errors.EncodeError, errors.ErrClipReleased)
	}

	args, err := c.args(path, opts)
	if err != nil {
		return err
	}

	if err := checkWritable(path); err != nil {
		se := errors.FromCode(err, errors.PermissionError, errors.ErrOutputNotWritable)
		se.Details = path + ": " + err.Error()
		return se
	}

	return c.lib.encode(ctx, args, c.info.Duration)
}

func (c *ffmpegClip) Close() error {
	c.released = true
	return nil
}

// args builds the ffmpeg command line through ffmpeg-go's stream graph.
func (c *ffmpegClip) args(path string, opts WriteOptions) ([]string, error) {
	kwargs := ffmpeg.KwArgs{}
	set := func(k, v string) {
		if v != "" {
			kwargs[k] = v
		}
	}
	set("c:v", opts.Codec)
	set("c:a", opts.AudioCodec)
	set("b:v", opts.Bitrate)
	set("preset", opts.Preset)
	if c.scaled {
		kwargs["vf"] = fmt.Sprintf("scale=%d:%d", evenDimension(c.width), evenDimension(c.height))
	}

	extra, err := ParseExtraParams(opts.ExtraParams)
	if err != nil {
		return nil, err
	}
	for k, v := range extra {
		kwargs[k] = v
	}

	return ffmpeg.Input(c.info.Path).Output(path, kwargs).OverWriteOutput().GetArgs(), nil
}

// ParseExtraParams turns ["-crf", "23", "-movflags", "+faststart"] into
// ffmpeg-go keyword arguments.
func ParseExtraParams(params []string) (ffmpeg.KwArgs, error) {
	if len(params)%2 != 0 {
		return nil, errors.New(errors.ValidationError, errors.GetErrorMessage(errors.ErrInvalidExtraParams), strings.Join(params, " "), errors.ErrInvalidExtraParams)
	}
	kwargs := ffmpeg.KwArgs{}
	for i := 0; i < len(params); i += 2 {
		flag := params[i]
		if !strings.HasPrefix(flag, "-") || len(flag) < 2 {
			return nil, errors.New(errors.ValidationError, errors.GetErrorMessage(errors.ErrInvalidExtraParams), flag, errors.ErrInvalidExtraParams)
		}
		kwargs[strings.TrimPrefix(flag, "-")] = params[i+1]
	}
	return kwargs, nil
}
