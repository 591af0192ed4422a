package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbomb79/backdrop/internal/background"
	"github.com/hbomb79/backdrop/pkg/logger"
)

var log = logger.Get("Fetcher")

type Profile int

const (
	// VideoProfile selects exactly one video-only stream at the
	// configured resolution.
	VideoProfile Profile = iota

	// AudioProfile selects the best available audio-only stream.
	AudioProfile
)

func (p Profile) String() string {
	if p == VideoProfile {
		return "video"
	}

	return "audio"
}

// Request describes a single media download: the stream profile to fetch
// from URI, and the file (Dir/Filename) it must be written to.
type Request struct {
	URI      string
	Dir      string
	Filename string
	Profile  Profile
}

type Downloader interface {
	Download(ctx context.Context, req Request) error
}

// Fetcher ensures backgrounds exist in the local cache, downloading them
// when they are missing. Cached files are keyed by "{credit}-{filename}" and
// are never re-validated once present.
//
// The existence check and the download are not atomic: two callers
// ensuring the same missing background concurrently may both download it.
type Fetcher struct {
	videoDir   string
	audioDir   string
	downloader Downloader
}

func New(videoDir string, audioDir string, downloader Downloader) *Fetcher {
	return &Fetcher{videoDir: videoDir, audioDir: audioDir, downloader: downloader}
}

func (f *Fetcher) VideoPath(bg background.VideoBackground) string {
	return filepath.Join(f.videoDir, bg.CacheName())
}

func (f *Fetcher) AudioPath(bg background.AudioBackground) string {
	return filepath.Join(f.audioDir, bg.CacheName())
}

// HasVideo reports whether the video background is already cached. Only
// regular files count; anything else at the cache path is re-downloaded.
func (f *Fetcher) HasVideo(bg background.VideoBackground) bool {
	return isFile(f.VideoPath(bg))
}

func (f *Fetcher) HasAudio(bg background.AudioBackground) bool {
	return isFile(f.AudioPath(bg))
}

// EnsureVideo downloads the video background if it is not already cached.
func (f *Fetcher) EnsureVideo(ctx context.Context, bg background.VideoBackground) error {
	return f.ensure(ctx, Request{URI: bg.URI, Dir: f.videoDir, Filename: bg.CacheName(), Profile: VideoProfile})
}

// EnsureAudio downloads the audio background if it is not already cached.
func (f *Fetcher) EnsureAudio(ctx context.Context, bg background.AudioBackground) error {
	return f.ensure(ctx, Request{URI: bg.URI, Dir: f.audioDir, Filename: bg.CacheName(), Profile: AudioProfile})
}

func (f *Fetcher) ensure(ctx context.Context, req Request) error {
	path := filepath.Join(req.Dir, req.Filename)
	if isFile(path) {
		log.Emit(logger.DEBUG, "Background %s %s already cached\n", req.Profile, path)
		return nil
	}

	if err := os.MkdirAll(req.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create %s cache directory %s: %w", req.Profile, req.Dir, err)
	}

	log.Emit(logger.NEW, "We need to download the background %s. It is fairly large but it's only done once.\n", req.Profile)
	log.Emit(logger.INFO, "Downloading %s from %s... please be patient\n", req.Filename, req.URI)
	if err := f.downloader.Download(ctx, req); err != nil {
		return fmt.Errorf("failed to download background %s %s from %s: %w", req.Profile, req.Filename, req.URI, err)
	}

	log.Emit(logger.SUCCESS, "Background %s downloaded successfully!\n", req.Profile)
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
