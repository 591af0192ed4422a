package fetch

// Config controls how missing backgrounds are downloaded.
type Config struct {
	// Path to the yt-dlp executable. When empty, yt-dlp
	// is resolved from the PATH.
	YtdlpBinaryPath string `yaml:"ytdlp_binary" env:"DOWNLOAD_YTDLP_BINARY_PATH"`

	// Height (in pixels) of the single video stream downloaded
	// for video backgrounds.
	VideoHeight int `yaml:"video_height" env:"DOWNLOAD_VIDEO_HEIGHT" env-default:"1080" validate:"gt=0"`
}
