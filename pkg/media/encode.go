package media

import (
	"bufio"
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/heyjunin/vidcompress/pkg/errors"
)

const stderrTailLines = 20

var (
	timeRegex        = regexp.MustCompile(`time=(\d+):(\d+):(\d+(?:\.\d+)?)`)
	notWritableRegex = regexp.MustCompile(`(?i)permission denied|read-only file system|no space left on device|disk quota exceeded`)
)

// encode runs ffmpeg with args and blocks until it exits.
func (f *FFmpeg) encode(ctx context.Context, args []string, duration time.Duration) error {
	f.logger.Debug("Executing FFmpeg command", "ffmpeg", map[string]interface{}{
		"command": f.options.FFmpegBinary + " " + strings.Join(args, " "),
	})

	cmd := exec.CommandContext(ctx, f.options.FFmpegBinary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.FromCode(err, errors.EncodeError, errors.ErrEncoderStart)
	}

	if err := cmd.Start(); err != nil {
		if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
			se := errors.FromCode(err, errors.EncodeError, errors.ErrEncoderNotFound)
			se.Details = f.options.FFmpegBinary + ": " + err.Error()
			return se
		}
		return errors.FromCode(err, errors.EncodeError, errors.ErrEncoderStart)
	}

	rep := f.options.Progress
	var src io.Reader = stderr
	if rep == nil {
		src = io.TeeReader(stderr, f.options.Stderr)
	} else if duration > 0 {
		rep.Start(duration.Milliseconds())
	}

	tail := newLineTail(stderrTailLines)
	scanner := bufio.NewScanner(src)
	scanner.Split(scanStatusLines)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tail.add(line)
		if rep != nil {
			f.logger.Debug(line, "ffmpeg", nil)
			if ms, ok := parseTimeMillis(line); ok && duration > 0 {
				rep.Update(ms, "encoding")
			}
		}
	}
	// The pipe must be empty before Wait, even if the scanner gave up.
	_, _ = io.Copy(io.Discard, src)

	if err := cmd.Wait(); err != nil {
		return f.classifyExit(ctx, err, tail.String())
	}
	return nil
}

func (f *FFmpeg) classifyExit(ctx context.Context, err error, stderrTail string) error {
	errType, code := errors.EncodeError, errors.ErrEncodeFailed
	switch {
	case ctx.Err() != nil:
		code = errors.ErrEncodeCancelled
	case notWritableRegex.MatchString(stderrTail):
		errType, code = errors.PermissionError, errors.ErrOutputNotWritable
	}

	se := errors.FromCode(err, errType, code)
	if stderrTail != "" {
		se.Details = err.Error() + "\n" + stderrTail
	}
	f.logger.Error("FFmpeg command failed", "ffmpeg", map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
	return se
}

// parseTimeMillis extracts the time=HH:MM:SS.xx position from an ffmpeg status line.
func parseTimeMillis(line string) (int64, bool) {
	m := timeRegex.FindStringSubmatch(line)
	if len(m) < 4 {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	total := float64(hours*3600+minutes*60) + seconds
	return int64(total * 1000), true
}

// scanStatusLines splits on '\n' and on the '\r' ffmpeg uses for its status line.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, bytes.TrimSpace(data[:i]), nil
	}
	if atEOF {
		return len(data), bytes.TrimSpace(data), nil
	}
	return 0, nil, nil
}

// lineTail keeps the last n lines.
type lineTail struct {
	lines []string
	max   int
}

func newLineTail(max int) *lineTail {
	return &lineTail{max: max}
}

func (t *lineTail) add(line string) {
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
}

func (t *lineTail) String() string {
	return strings.Join(t.lines, "\n")
}
