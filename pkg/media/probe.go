package media

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/heyjunin/vidcompress/pkg/errors"
)

// Info holds what ffprobe reports about an input.
type Info struct {
	Path       string
	Width      int
	Height     int
	Duration   time.Duration
	VideoCodec string
	HasAudio   bool
}

type sideData struct {
	Rotation float64 `json:"rotation,omitempty"`
}

// probeOutput represents the JSON output of ffprobe
type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width,omitempty"`
		Height    int    `json:"height,omitempty"`
		Tags      struct {
			Rotate string `json:"rotate,omitempty"`
		} `json:"tags"`
		SideDataList []sideData `json:"side_data_list,omitempty"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeFunc returns ffprobe's JSON (-show_format -show_streams) for path.
type ProbeFunc func(ctx context.Context, path string) (string, error)

const ffprobeBinary = "ffprobe"

// probeArgs are the arguments ffmpeg.Probe passes to ffprobe.
var probeArgs = ffmpeg.KwArgs{
	"show_format":  "",
	"show_streams": "",
	"of":           "json",
}

// FFprobe runs ffprobe with the same arguments as ffmpeg.Probe. Unlike
// ffmpeg.Probe the process is killed when ctx is done.
func FFprobe(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	args := append(ffmpeg.ConvertKwargsToCmdLineArgs(probeArgs), path)
	cmd := exec.CommandContext(ctx, ffprobeBinary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	for _, option := range ffmpeg.GlobalCommandOptions {
		option(cmd)
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%s interrupted: %w", ffprobeBinary, ctxErr)
		}
		return "", fmt.Errorf("[%s] %w", strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// ParseProbe extracts the first video stream's display size, the duration
// and audio presence from ffprobe JSON.
func ParseProbe(path, data string) (*Info, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, errors.FromCode(err, errors.DecodeError, errors.ErrProbeParse)
	}

	info := &Info{Path: path}
	foundVideo := false
	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			if foundVideo {
				continue
			}
			foundVideo = true
			info.Width, info.Height = s.Width, s.Height
			info.VideoCodec = s.CodecName
			if quarterTurn(s.Tags.Rotate, s.SideDataList) {
				info.Width, info.Height = info.Height, info.Width
			}
		case "audio":
			info.HasAudio = true
		}
	}

	if !foundVideo {
		return nil, errors.New(errors.DecodeError, errors.GetErrorMessage(errors.ErrNoVideoStream), path, errors.ErrNoVideoStream)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, errors.New(errors.DecodeError, errors.GetErrorMessage(errors.ErrInvalidDimension), path, errors.ErrInvalidDimension)
	}

	if out.Format.Duration != "" {
		if secs, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			info.Duration = time.Duration(secs * float64(time.Second))
		}
	}

	return info, nil
}

// quarterTurn reports whether the stream is displayed rotated by 90 or 270 degrees.
// ffmpeg autorotates on decode, so the scale filter sees the swapped size.
func quarterTurn(rotateTag string, sides []sideData) bool {
	deg := 0
	if rotateTag != "" {
		if v, err := strconv.Atoi(strings.TrimSpace(rotateTag)); err == nil {
			deg = v
		}
	}
	for _, sd := range sides {
		if sd.Rotation != 0 {
			deg = int(sd.Rotation)
		}
	}
	deg = ((deg % 360) + 360) % 360
	return deg == 90 || deg == 270
}

func classifyProbeError(path string, err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.FromCode(err, errors.DecodeError, errors.ErrProbeCancelled)
	}
	if stderrors.Is(err, exec.ErrNotFound) || strings.Contains(err.Error(), "executable file not found") {
		return errors.FromCode(err, errors.DecodeError, errors.ErrProbeNotFound)
	}
	se := errors.FromCode(err, errors.DecodeError, errors.ErrProbeFailed)
	se.Details = path + ": " + err.Error()
	return se
}
