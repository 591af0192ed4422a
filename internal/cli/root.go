package cli

import (
	"context"
	"fmt"

	"github.com/hbomb79/backdrop/internal"
	"github.com/hbomb79/backdrop/pkg/logger"
	"github.com/spf13/cobra"
)

var Version = "0.1.0"

var (
	configPath string
	config     *internal.BackdropConfig
)

var rootCmd = &cobra.Command{
	Use:   "backdrop",
	Short: "Select, cache and chop background footage",
	Long: `backdrop picks background gameplay footage and music for narrated videos.

Backgrounds are chosen from a catalog (optionally honouring your configured
preference), downloaded once in to a local cache, and a random section matching
the length of your narration is chopped out for each render job.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}

		level, err := logger.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}

		logger.SetMinLoggingLevel(level.Level())
		config = loaded
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// The version does not depend on any configuration
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "backdrop version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file (environment variables only if omitted)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(chopCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doctorCmd)
}

// Execute runs the backdrop command tree. The context provided is
// passed to every command, and cancels any in-flight download or chop.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
