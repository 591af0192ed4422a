package cli

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

const (
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
	YtdlpInstallURL  = "https://github.com/yt-dlp/yt-dlp#installation"
)

type dependency struct {
	name       string
	path       string
	installURL string
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the external tools backdrop relies on (ffmpeg, ffprobe, yt-dlp) are installed and available.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ytdlpPath := config.Download.YtdlpBinaryPath
		if ytdlpPath == "" {
			ytdlpPath = "yt-dlp"
		}

		deps := []dependency{
			{"ffmpeg", config.Format.FfmpegBinaryPath, FfmpegInstallURL},
			{"ffprobe", config.Format.FfprobeBinaryPath, FfmpegInstallURL},
			{"yt-dlp", ytdlpPath, YtdlpInstallURL},
		}

		out := cmd.OutOrStdout()
		allGood := true
		for _, dep := range deps {
			if _, err := exec.LookPath(dep.path); err != nil {
				fmt.Fprintf(out, "✗ %s: NOT FOUND (%s)\n", dep.name, dep.path)
				fmt.Fprintf(out, "  Install from: %s\n", dep.installURL)
				allGood = false
			} else {
				fmt.Fprintf(out, "✓ %s: OK\n", dep.name)
			}
		}

		if !allGood {
			return errors.New("some dependencies are missing")
		}

		fmt.Fprintln(out, "All dependencies are installed!")
		return nil
	},
}
