package ffmpeg

import (
	"context"
	"fmt"
	"strconv"

	"github.com/floostack/transcoder/ffmpeg"
	"github.com/hbomb79/backdrop/pkg/logger"
)

type TrimMode int

const (
	// StreamCopy trims without re-encoding, copying the
	// existing streams in to the output container.
	StreamCopy TrimMode = iota

	// Reencode decodes the input and encodes the trimmed
	// section using H.264/AAC.
	Reencode

	// AudioOnly drops any video stream and encodes the
	// trimmed audio as MP3.
	AudioOnly
)

func (m TrimMode) String() string {
	switch m {
	case StreamCopy:
		return "stream-copy"
	case Reencode:
		return "re-encode"
	case AudioOnly:
		return "audio-only"
	default:
		return fmt.Sprintf("UNKNOWN[%d]", int(m))
	}
}

// TrimRequest describes a section of the input media (Start, for Duration
// seconds) to be written to the output path.
type TrimRequest struct {
	Input    string
	Output   string
	Start    float64
	Duration float64
	Mode     TrimMode
}

type Trimmer struct {
	config Config
}

func NewTrimmer(config Config) *Trimmer { return &Trimmer{config} }

// Trim extracts the section described by the request. Failures to
// produce the output are reported as an *ExtractError.
func (t *Trimmer) Trim(ctx context.Context, req TrimRequest) error {
	log.Emit(logger.DEBUG, "Trimming %s [%.2fs +%.2fs] -> %s (%s)\n", req.Input, req.Start, req.Duration, req.Output, req.Mode)

	cmd := NewCmd(req.Input, req.Output, &t.config)
	return cmd.Run(ctx, trimOptions(req), func(p *FfmpegProgress) {
		log.Emit(logger.VERBOSE, "%s: %.1f%% (time=%s speed=%s)\n", cmd, p.Progress, p.CurrentTime, p.Speed)
	})
}

func trimOptions(req TrimRequest) *ffmpeg.Options {
	seek := formatSeconds(req.Start)
	duration := formatSeconds(req.Duration)
	overwrite := true
	opts := &ffmpeg.Options{
		SeekTime:  &seek,
		Duration:  &duration,
		Overwrite: &overwrite,
	}

	switch req.Mode {
	case StreamCopy:
		codec := "copy"
		opts.VideoCodec = &codec
		opts.AudioCodec = &codec
	case Reencode:
		videoCodec, audioCodec, preset := "libx264", "aac", "fast"
		opts.VideoCodec = &videoCodec
		opts.AudioCodec = &audioCodec
		opts.Preset = &preset
	case AudioOnly:
		skipVideo := true
		audioCodec := "libmp3lame"
		opts.SkipVideo = &skipVideo
		opts.AudioCodec = &audioCodec
	}

	return opts
}

func formatSeconds(secs float64) string {
	return strconv.FormatFloat(secs, 'f', 3, 64)
}
