package compressor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyjunin/vidcompress/pkg/errors"
	"github.com/heyjunin/vidcompress/pkg/inspect"
	"github.com/heyjunin/vidcompress/pkg/logger"
	"github.com/heyjunin/vidcompress/pkg/media"
)

type mockClip struct {
	width, height int
	closes        int
	resized       *mockClip
	resizeErr     error
	writeErr      error
	outputBytes   int
	written       media.WriteOptions
	writtenPath   string
}

func (c *mockClip) Width() int              { return c.width }
func (c *mockClip) Height() int             { return c.height }
func (c *mockClip) Duration() time.Duration { return 10 * time.Second }

func (c *mockClip) Resized(width int) (media.Clip, error) {
	if c.resizeErr != nil {
		return nil, c.resizeErr
	}
	c.resized = &mockClip{
		width:       width,
		height:      media.ProportionalHeight(width, c.width, c.height),
		writeErr:    c.writeErr,
		outputBytes: c.outputBytes,
	}
	return c.resized, nil
}

func (c *mockClip) WriteFile(_ context.Context, path string, opts media.WriteOptions) error {
	c.written = opts
	c.writtenPath = path
	if c.writeErr != nil {
		return c.writeErr
	}
	return os.WriteFile(path, make([]byte, c.outputBytes), 0644)
}

func (c *mockClip) Close() error {
	c.closes++
	return nil
}

type mockLibrary struct {
	clip    *mockClip
	openErr error
	opened  []string
}

func (l *mockLibrary) Open(_ context.Context, path string) (media.Clip, error) {
	l.opened = append(l.opened, path)
	if l.openErr != nil {
		return nil, l.openErr
	}
	return l.clip, nil
}

func writeInput(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}

func newTestCompressor(lib media.Library, out *bytes.Buffer) *Compressor {
	c := New(lib, Options{}, out, logger.Discard{})
	c.inspect = func(string) (*inspect.Info, error) {
		return &inspect.Info{VideoCodec: "avc1", Width: 1280, Height: 720}, nil
	}
	return c
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"movie.mov", "movie_compressed.mp4"},
		{"/videos/clip.mp4", "/videos/clip_compressed.mp4"},
		{"/videos/holiday.2024.MKV", "/videos/holiday.2024_compressed.mp4"},
		{"noext", "noext_compressed.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutputPath(tt.input))
		})
	}
}

func TestOutputPathIsStable(t *testing.T) {
	assert.Equal(t, OutputPath("/a/b/movie.avi"), OutputPath("/a/b/movie.avi"))
}

func TestTargetHeight(t *testing.T) {
	assert.Equal(t, 720, TargetHeight(1280, 1920, 1080))
	assert.Equal(t, 2276, TargetHeight(1280, 1080, 1920))
	assert.Equal(t, 960, TargetHeight(1280, 640, 480))
}

func TestCompressSuccess(t *testing.T) {
	input := writeInput(t, "movie.mov", 4*1024*1024)
	clip := &mockClip{width: 1920, height: 1080, outputBytes: 1024 * 1024}
	lib := &mockLibrary{clip: clip}
	var out bytes.Buffer

	res, err := newTestCompressor(lib, &out).Compress(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{input}, lib.opened)
	assert.Equal(t, filepath.Join(filepath.Dir(input), "movie_compressed.mp4"), res.OutputPath)
	assert.Equal(t, 1280, res.Width)
	assert.Equal(t, 720, res.Height)
	assert.Equal(t, "500k", res.Bitrate)
	assert.InDelta(t, 75.0, res.Stats.ReductionPercent, 1e-9)
	require.NotNil(t, res.Encoded)
	assert.Equal(t, "avc1", res.Encoded.VideoCodec)

	assert.Equal(t, 1, clip.closes)
	require.NotNil(t, clip.resized)
	assert.Equal(t, 1, clip.resized.closes)
	assert.Equal(t, res.OutputPath, clip.resized.writtenPath)

	console := out.String()
	assert.Contains(t, console, input)
	assert.Contains(t, console, "1280x720")
	assert.Contains(t, console, "500k")
}

func TestCompressConsoleInRussian(t *testing.T) {
	l10n.ForceLanguage("ru")
	defer l10n.ResetLanguage()

	input := writeInput(t, "movie.mov", 4*1024*1024)
	lib := &mockLibrary{clip: &mockClip{width: 1920, height: 1080, outputBytes: 1024 * 1024}}
	var out bytes.Buffer

	_, err := newTestCompressor(lib, &out).Compress(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t,
		"Загружаем видео: "+input+"\nСжимаем видео... Новое разрешение: 1280x720, bitrate: 500k\n",
		out.String())
}

func TestCompressWriteOptions(t *testing.T) {
	input := writeInput(t, "clip.mp4", 100)
	clip := &mockClip{width: 1920, height: 1080, outputBytes: 50}

	_, err := newTestCompressor(&mockLibrary{clip: clip}, &bytes.Buffer{}).Compress(context.Background(), input)
	require.NoError(t, err)

	written := clip.resized.written
	assert.Equal(t, "libx264", written.Codec)
	assert.Equal(t, "aac", written.AudioCodec)
	assert.Equal(t, "500k", written.Bitrate)
	assert.Equal(t, "medium", written.Preset)
	assert.Equal(t, []string{"-crf", "23"}, written.ExtraParams)
}

func TestCompressCustomOptions(t *testing.T) {
	input := writeInput(t, "clip.mp4", 100)
	clip := &mockClip{width: 1920, height: 1080, outputBytes: 50}
	c := New(&mockLibrary{clip: clip}, Options{Width: 640, Bitrate: "300k", SkipInspect: true}, &bytes.Buffer{}, logger.Discard{})

	res, err := c.Compress(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 640, res.Width)
	assert.Equal(t, 360, res.Height)
	assert.Equal(t, "300k", clip.resized.written.Bitrate)
	assert.Nil(t, res.Encoded)
}

func TestCompressReleasesClipsOnEncodeFailure(t *testing.T) {
	input := writeInput(t, "movie.mp4", 100)
	encodeErr := errors.New(errors.EncodeError, "encoding failed", "exit status 1", errors.ErrEncodeFailed)
	clip := &mockClip{width: 1920, height: 1080, writeErr: encodeErr}

	res, err := newTestCompressor(&mockLibrary{clip: clip}, &bytes.Buffer{}).Compress(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Same(t, encodeErr, err)

	assert.Equal(t, 1, clip.closes)
	assert.Equal(t, 1, clip.resized.closes)
	assert.NoFileExists(t, OutputPath(input))
}

func TestCompressReleasesOriginalOnResizeFailure(t *testing.T) {
	input := writeInput(t, "movie.mp4", 100)
	clip := &mockClip{width: 1920, height: 1080, resizeErr: fmt.Errorf("resize failed")}

	_, err := newTestCompressor(&mockLibrary{clip: clip}, &bytes.Buffer{}).Compress(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 1, clip.closes)
	assert.Nil(t, clip.resized)
}

func TestCompressDecodeFailure(t *testing.T) {
	decodeErr := errors.New(errors.DecodeError, "no video stream", "", errors.ErrNoVideoStream)
	lib := &mockLibrary{openErr: decodeErr}
	var out bytes.Buffer

	_, err := newTestCompressor(lib, &out).Compress(context.Background(), "/videos/broken.avi")
	require.Error(t, err)

	structErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.DecodeError, structErr.Type)
	assert.Equal(t, errors.ErrNoVideoStream, structErr.Code)
	assert.NotContains(t, out.String(), "x720")
}

func TestCompressMissingOutputIsStatError(t *testing.T) {
	input := writeInput(t, "movie.mp4", 100)
	clip := &noOutputClip{mockClip: &mockClip{width: 1920, height: 1080}}
	lib := libraryFunc(func(context.Context, string) (media.Clip, error) { return clip, nil })

	_, err := newTestCompressor(lib, &bytes.Buffer{}).Compress(context.Background(), input)
	require.Error(t, err)
	structErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.SystemError, structErr.Type)
	assert.Equal(t, errors.ErrStatFailed, structErr.Code)
	assert.Equal(t, 2, clip.closes)
}

func TestCompressRejectsNonPositiveWidth(t *testing.T) {
	input := writeInput(t, "movie.mov", 100)
	lib := media.NewFFmpegWithLogger(media.Options{
		FFmpegBinary: "vidcompress-no-such-ffmpeg",
		Probe: func(context.Context, string) (string, error) {
			return `{"streams":[{"codec_type":"video","width":1920,"height":1080}],"format":{"duration":"1.0"}}`, nil
		},
	}, logger.Discard{})
	var out bytes.Buffer

	_, err := New(lib, Options{Width: -640}, &out, logger.Discard{}).Compress(context.Background(), input)
	require.Error(t, err)

	structErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ValidationError, structErr.Type)
	assert.Equal(t, errors.ErrInvalidWidth, structErr.Code)
	assert.NotContains(t, out.String(), "-640x")
	assert.NoFileExists(t, OutputPath(input))
}

func TestCompressInspectFailureIsNotFatal(t *testing.T) {
	input := writeInput(t, "movie.mp4", 100)
	clip := &mockClip{width: 1920, height: 1080, outputBytes: 10}
	c := newTestCompressor(&mockLibrary{clip: clip}, &bytes.Buffer{})
	c.inspect = func(string) (*inspect.Info, error) { return nil, fmt.Errorf("no moov box") }

	res, err := c.Compress(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, res.Encoded)
	assert.InDelta(t, 90.0, res.Stats.ReductionPercent, 1e-9)
}

func TestResultSummary(t *testing.T) {
	res := &Result{InputPath: "a.mov", OutputPath: "a_compressed.mp4", Width: 1280, Height: 720, Bitrate: "500k"}
	s := res.Summary()
	assert.Equal(t, "a.mov", s.Input)
	assert.Equal(t, "a_compressed.mp4", s.Output)
	assert.Equal(t, 720, s.Height)
}

type libraryFunc func(ctx context.Context, path string) (media.Clip, error)

func (f libraryFunc) Open(ctx context.Context, path string) (media.Clip, error) { return f(ctx, path) }

type noOutputClip struct {
	*mockClip
}

func (c *noOutputClip) Resized(int) (media.Clip, error) { return c, nil }

func (c *noOutputClip) WriteFile(context.Context, string, media.WriteOptions) error { return nil }
