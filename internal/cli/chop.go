package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hbomb79/backdrop/internal"
	"github.com/spf13/cobra"
)

var (
	chopDuration float64
	chopJobID    string
)

var chopCmd = &cobra.Command{
	Use:   "chop",
	Short: "Chop background footage for a render job",
	Long: `Resolve the background video and audio, download them if they are not yet
cached, and write a random section of the requested duration to
<assets>/temp/<job>/background.mp4 (and background.mp3 for the audio).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if chopDuration <= 0 {
			return errors.New("--duration must be greater than zero")
		}

		jobID := chopJobID
		if jobID == "" {
			jobID = uuid.NewString()
		}

		b, err := internal.New(config)
		if err != nil {
			return err
		}

		result, err := b.Prepare(cmd.Context(), chopDuration, jobID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "video:  %s (from %.0fs)\n", result.VideoPath, result.VideoStart)
		fmt.Fprintf(out, "audio:  %s (from %.0fs)\n", result.AudioPath, result.AudioStart)
		fmt.Fprintf(out, "credit: %s\n", result.Credit)
		return nil
	},
}

func init() {
	chopCmd.Flags().Float64VarP(&chopDuration, "duration", "d", 0, "length of the background to chop, in seconds")
	chopCmd.Flags().StringVarP(&chopJobID, "job", "j", "", "job ID used to namespace the output (random if omitted)")
	_ = chopCmd.MarkFlagRequired("duration")
}
