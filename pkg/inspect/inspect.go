// Package inspect reads the box structure of an encoded MP4 to confirm what
// the encoder actually produced.
package inspect

import (
	"fmt"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Info describes the tracks of an MP4 file.
type Info struct {
	VideoCodec string        `json:"video_codec" yaml:"video_codec"`
	Width      int           `json:"width" yaml:"width"`
	Height     int           `json:"height" yaml:"height"`
	Duration   time.Duration `json:"duration_ns" yaml:"duration"`
	HasAudio   bool          `json:"has_audio" yaml:"has_audio"`
}

// File inspects the MP4 at path. The mdat payload is skipped, not loaded.
func File(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return nil, fmt.Errorf("no moov box")
	}

	return fromMoov(moov)
}

func fromMoov(moov *mp4.MoovBox) (*Info, error) {
	info := &Info{}
	if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		info.Duration = time.Duration(float64(moov.Mvhd.Duration) / float64(moov.Mvhd.Timescale) * float64(time.Second))
	}

	foundVideo := false
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		switch trak.Mdia.Hdlr.HandlerType {
		case "soun":
			info.HasAudio = true
		case "vide":
			if foundVideo {
				continue
			}
			if entry := visualEntry(trak); entry != nil {
				info.VideoCodec = entry.Type()
				info.Width = int(entry.Width)
				info.Height = int(entry.Height)
				foundVideo = true
			}
		}
	}

	if !foundVideo {
		return nil, fmt.Errorf("no video track found")
	}
	return info, nil
}

func visualEntry(trak *mp4.TrakBox) *mp4.VisualSampleEntryBox {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return nil
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return vse
		}
	}
	return nil
}
