package internal

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/backdrop/internal/background"
	"github.com/hbomb79/backdrop/internal/fetch"
	"github.com/hbomb79/backdrop/internal/ffmpeg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// BackdropConfig is the struct used to contain the
// various user config supplied by file, or
// environment variables.
type BackdropConfig struct {
	Settings SettingsConfig `yaml:"settings"`
	Paths    PathsConfig    `yaml:"paths"`
	Format   ffmpeg.Config  `yaml:"ffmpeg"`
	Download fetch.Config   `yaml:"download"`
	LogLevel string         `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

type SettingsConfig struct {
	Background BackgroundSettings `yaml:"background"`
}

// BackgroundSettings holds the users preferred backgrounds. The values are
// case-insensitive catalog keys; leaving them empty (or naming a background
// that doesn't exist) results in a random background being used.
type BackgroundSettings struct {
	BackgroundVideo string `yaml:"background_video" env:"BACKGROUND_VIDEO"`
	BackgroundAudio string `yaml:"background_audio" env:"BACKGROUND_AUDIO"`
}

// PathsConfig controls where backgrounds are cached and chopped. Catalog
// paths are optional; when empty the catalog bundled with Backdrop is used.
type PathsConfig struct {
	AssetsDir    string `yaml:"assets_dir" env:"ASSETS_DIR" env-default:"assets" validate:"required"`
	VideoCatalog string `yaml:"video_catalog" env:"VIDEO_CATALOG"`
	AudioCatalog string `yaml:"audio_catalog" env:"AUDIO_CATALOG"`
}

// LoadConfig reads a configuration file formatted in YAML in to a
// BackdropConfig, with environment variables taking precedence. If
// path is empty, only the environment (and defaults) are used.
func LoadConfig(path string) (*BackdropConfig, error) {
	config := &BackdropConfig{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration - %w", err)
	}

	if err := config.expandPaths(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("configuration is invalid - %w", err)
	}

	return config, nil
}

func (config *BackdropConfig) expandPaths() error {
	for _, p := range []*string{&config.Paths.AssetsDir, &config.Paths.VideoCatalog, &config.Paths.AudioCatalog} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}

		*p = expanded
	}

	return nil
}

func (config *BackdropConfig) Preferences() background.Preferences {
	return background.Preferences{
		Video: config.Settings.Background.BackgroundVideo,
		Audio: config.Settings.Background.BackgroundAudio,
	}
}

func (config *BackdropConfig) CatalogSources() background.CatalogSources {
	return background.CatalogSources{VideoPath: config.Paths.VideoCatalog, AudioPath: config.Paths.AudioCatalog}
}

func (config *BackdropConfig) VideoCacheDir() string {
	return filepath.Join(config.Paths.AssetsDir, "backgrounds", "video")
}

func (config *BackdropConfig) AudioCacheDir() string {
	return filepath.Join(config.Paths.AssetsDir, "backgrounds", "audio")
}

func (config *BackdropConfig) TempDir() string {
	return filepath.Join(config.Paths.AssetsDir, "temp")
}
