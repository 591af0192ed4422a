package internal

import (
	"context"
	"fmt"

	"github.com/hbomb79/backdrop/internal/background"
	"github.com/hbomb79/backdrop/internal/chop"
	"github.com/hbomb79/backdrop/internal/fetch"
	"github.com/hbomb79/backdrop/internal/ffmpeg"
	"github.com/hbomb79/backdrop/pkg/logger"
)

var log = logger.Get("Core")

// Backdrop wires together the background catalog, selection, download cache
// and chopper. A single Backdrop is created per process; each render job
// then calls Prepare to obtain its background footage.
type Backdrop struct {
	config   *BackdropConfig
	catalog  *background.Catalog
	selector *background.Selector
	fetcher  *fetch.Fetcher
	chopper  *chop.Chopper
}

// New constructs a Backdrop which downloads missing backgrounds using yt-dlp.
func New(config *BackdropConfig) (*Backdrop, error) {
	return NewWithDownloader(config, fetch.NewYtdlpDownloader(config.Download))
}

// NewWithDownloader constructs a Backdrop using the downloader provided to
// fill the background cache. The catalog is loaded immediately, and any
// error doing so is returned.
func NewWithDownloader(config *BackdropConfig, downloader fetch.Downloader) (*Backdrop, error) {
	log.Emit(logger.DEBUG, "Bootstrapping Backdrop using config: %#v\n", config)
	catalog, err := background.LoadCatalog(config.CatalogSources())
	if err != nil {
		return nil, fmt.Errorf("failed to load background catalog: %w", err)
	}

	fetcher := fetch.New(config.VideoCacheDir(), config.AudioCacheDir(), downloader)
	return &Backdrop{
		config:   config,
		catalog:  catalog,
		selector: background.NewSelector(catalog, config.Preferences()),
		fetcher:  fetcher,
		chopper:  chop.New(config.TempDir(), fetcher, ffmpeg.NewProber(config.Format), ffmpeg.NewTrimmer(config.Format)),
	}, nil
}

func (b *Backdrop) Catalog() *background.Catalog { return b.catalog }

func (b *Backdrop) Fetcher() *fetch.Fetcher { return b.fetcher }

// Resolve selects the backgrounds for a render job based on the configured preferences.
func (b *Backdrop) Resolve() background.Config { return b.selector.Resolve() }

// Ensure makes sure both backgrounds in the config provided are cached locally.
func (b *Backdrop) Ensure(ctx context.Context, config background.Config) error {
	if err := b.fetcher.EnsureVideo(ctx, config.Video); err != nil {
		return err
	}

	return b.fetcher.EnsureAudio(ctx, config.Audio)
}

// Prepare resolves, downloads (if needed) and chops the backgrounds for a
// single render job, returning the location of the chopped footage.
func (b *Backdrop) Prepare(ctx context.Context, targetDuration float64, jobID string) (*chop.Result, error) {
	config := b.Resolve()
	log.Emit(logger.INFO, "Using background video %q (%s) and audio %q (%s)\n", config.Video.Filename, config.Video.Credit, config.Audio.Filename, config.Audio.Credit)

	if err := b.Ensure(ctx, config); err != nil {
		return nil, err
	}

	return b.chopper.Produce(ctx, config, targetDuration, jobID)
}

// FetchAll downloads every background in the catalog that is
// not already cached, one at a time.
func (b *Backdrop) FetchAll(ctx context.Context) error {
	for _, key := range b.catalog.Keys(background.VideoMode) {
		v, _ := b.catalog.Video(key)
		if err := b.fetcher.EnsureVideo(ctx, v); err != nil {
			return err
		}
	}

	for _, key := range b.catalog.Keys(background.AudioMode) {
		a, _ := b.catalog.Audio(key)
		if err := b.fetcher.EnsureAudio(ctx, a); err != nil {
			return err
		}
	}

	return nil
}
