package chop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hbomb79/backdrop/internal/background"
	"github.com/hbomb79/backdrop/internal/ffmpeg"
	"github.com/hbomb79/backdrop/pkg/logger"
)

const (
	VideoOutputName = "background.mp4"
	AudioOutputName = "background.mp3"
)

var (
	log = logger.Get("Chopper")

	ErrInvalidJobID = errors.New("job ID is empty once sanitized")

	jobIDSanitizer = regexp.MustCompile(`[^\p{L}\p{N}_\p{Z}\t\n\v\f\r\x1c-\x1f\x{85}-]`)
)

type (
	prober interface {
		Duration(path string) (float64, error)
	}

	trimmer interface {
		Trim(ctx context.Context, req ffmpeg.TrimRequest) error
	}

	mediaCache interface {
		VideoPath(background.VideoBackground) string
		AudioPath(background.AudioBackground) string
	}

	// Chopper cuts a random section of the cached background footage (and
	// a separate random section of the background audio) in to a per-job
	// working directory, ready for composition.
	Chopper struct {
		tempDir string
		cache   mediaCache
		prober  prober
		trimmer trimmer
		sampler *Sampler
	}

	Result struct {
		// Credit is the attribution for the background video
		Credit      string
		AudioCredit string
		VideoPath   string
		AudioPath   string
		VideoStart  float64
		AudioStart  float64
		Duration    float64
	}
)

func New(tempDir string, cache mediaCache, prober prober, trimmer trimmer) *Chopper {
	return &Chopper{tempDir: tempDir, cache: cache, prober: prober, trimmer: trimmer, sampler: defaultSampler}
}

// WithSampler replaces the random source used to pick clip intervals.
func (c *Chopper) WithSampler(s *Sampler) *Chopper {
	c.sampler = s
	return c
}

// SanitizeJobID strips everything but letters, digits, underscores,
// whitespace (including Unicode spaces) and hyphens from the job ID so
// it is safe to use as a directory name.
func SanitizeJobID(jobID string) string {
	return jobIDSanitizer.ReplaceAllString(jobID, "")
}

// Produce writes {temp}/{job}/background.mp4, a random section of the
// configured background video which is targetDuration seconds long, and
// {temp}/{job}/background.mp3, an independently chosen section of the
// background audio of the same length.
//
// The video is first extracted using a stream copy; if FFmpeg fails to produce
// the output this way, the section is re-encoded instead.
func (c *Chopper) Produce(ctx context.Context, config background.Config, targetDuration float64, jobID string) (*Result, error) {
	log.Emit(logger.NEW, "Finding a spot in the background video to chop...\n")

	id := SanitizeJobID(jobID)
	if id == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJobID, jobID)
	}

	videoSource := c.cache.VideoPath(config.Video)
	audioSource := c.cache.AudioPath(config.Audio)

	videoLength, err := c.prober.Duration(videoSource)
	if err != nil {
		return nil, fmt.Errorf("failed to probe background video: %w", err)
	}
	audioLength, err := c.prober.Duration(audioSource)
	if err != nil {
		return nil, fmt.Errorf("failed to probe background audio: %w", err)
	}

	videoStart, _, err := c.sampler.Sample(targetDuration, videoLength)
	if err != nil {
		return nil, fmt.Errorf("background video %s: %w", videoSource, err)
	}
	audioStart, _, err := c.sampler.Sample(targetDuration, audioLength)
	if err != nil {
		return nil, fmt.Errorf("background audio %s: %w", audioSource, err)
	}

	outputDir := filepath.Join(c.tempDir, id)
	result := &Result{
		Credit:      config.Video.Credit,
		AudioCredit: config.Audio.Credit,
		VideoPath:   filepath.Join(outputDir, VideoOutputName),
		AudioPath:   filepath.Join(outputDir, AudioOutputName),
		VideoStart:  videoStart,
		AudioStart:  audioStart,
		Duration:    targetDuration,
	}

	audioReq := ffmpeg.TrimRequest{Input: audioSource, Output: result.AudioPath, Start: audioStart, Duration: targetDuration, Mode: ffmpeg.AudioOnly}
	if err := c.trimmer.Trim(ctx, audioReq); err != nil {
		return nil, fmt.Errorf("failed to chop background audio: %w", err)
	}

	videoReq := ffmpeg.TrimRequest{Input: videoSource, Output: result.VideoPath, Start: videoStart, Duration: targetDuration, Mode: ffmpeg.StreamCopy}
	if err := c.trimVideo(ctx, videoReq); err != nil {
		// The job directory only holds usable footage once both have been chopped
		if rmErr := os.Remove(result.AudioPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Emit(logger.WARNING, "Failed to remove chopped background audio %s: %v\n", result.AudioPath, rmErr)
		}

		return nil, fmt.Errorf("failed to chop background video: %w", err)
	}

	log.Emit(logger.SUCCESS, "Background video chopped successfully!\n")
	return result, nil
}

func (c *Chopper) trimVideo(ctx context.Context, req ffmpeg.TrimRequest) error {
	err := c.trimmer.Trim(ctx, req)

	var extractErr *ffmpeg.ExtractError
	if err == nil || !errors.As(err, &extractErr) || ctx.Err() != nil {
		return err
	}

	log.Emit(logger.WARNING, "FFMPEG issue (%s). Trying again...\n", err)
	req.Mode = ffmpeg.Reencode
	return c.trimmer.Trim(ctx, req)
}
