package cli

import (
	"github.com/hbomb79/backdrop/internal"
	"github.com/spf13/cobra"
)

var fetchAll bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download backgrounds in to the local cache",
	Long: `Download the configured backgrounds (or every background in the catalog
when --all is given) so that later chops don't need to wait for a download.
Backgrounds which are already cached are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := internal.New(config)
		if err != nil {
			return err
		}

		if fetchAll {
			return b.FetchAll(cmd.Context())
		}

		return b.Ensure(cmd.Context(), b.Resolve())
	},
}

func init() {
	fetchCmd.Flags().BoolVarP(&fetchAll, "all", "a", false, "download every background in the catalog")
}
