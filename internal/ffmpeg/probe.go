package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"
)

func ProbeFile(config Config, path string) (transcoder.Metadata, error) {
	cfg := ffmpeg.Config{
		FfmpegBinPath:  config.FfmpegBinaryPath,
		FfprobeBinPath: config.FfprobeBinaryPath,
	}
	transcoder := ffmpeg.New(&cfg).Input(path)
	metadata, err := transcoder.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("failed to extract file metadata information using ffprobe: %s", err.Error())
	}

	return metadata, nil
}

// Prober reports the duration of media files using ffprobe.
type Prober struct {
	config Config
}

func NewProber(config Config) *Prober { return &Prober{config} }

// Duration returns the length of the media at the path given, in seconds.
func (p *Prober) Duration(path string) (float64, error) {
	metadata, err := ProbeFile(p.config, path)
	if err != nil {
		return 0, err
	}

	raw := metadata.GetFormat().GetDuration()
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe reported unparseable duration %q for %s: %w", raw, path, err)
	}

	return duration, nil
}
