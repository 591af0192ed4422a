package fetch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hbomb79/backdrop/pkg/logger"
	"github.com/lrstanley/go-ytdlp"
)

const progressInterval = 2 * time.Second

// YtdlpDownloader downloads media from any host supported by yt-dlp.
type YtdlpDownloader struct {
	config Config
}

func NewYtdlpDownloader(config Config) *YtdlpDownloader {
	return &YtdlpDownloader{config}
}

func (d *YtdlpDownloader) Download(ctx context.Context, req Request) error {
	cmd := ytdlp.New().
		NoPlaylist().
		Format(d.format(req.Profile)).
		Output(filepath.Join(req.Dir, escapeOutputTemplate(req.Filename))).
		ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			log.Emit(logger.INFO, "Downloading %s: %.1f%%\n", req.Filename, update.Percent())
		})

	if d.config.YtdlpBinaryPath != "" {
		cmd.SetExecutable(d.config.YtdlpBinaryPath)
	}

	if _, err := cmd.Run(ctx, req.URI); err != nil {
		return fmt.Errorf("yt-dlp failed: %w", err)
	}

	return nil
}

func (d *YtdlpDownloader) format(profile Profile) string {
	if profile == AudioProfile {
		return "bestaudio"
	}

	height := d.config.VideoHeight
	return fmt.Sprintf("bv[height=%d][ext=mp4]/bv[height=%d]", height, height)
}

// escapeOutputTemplate prevents yt-dlp from interpreting any '%'
// characters in the filename as output template fields.
func escapeOutputTemplate(name string) string {
	return strings.ReplaceAll(name, "%", "%%")
}
