package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/hbomb79/backdrop/internal/background"
	"github.com/hbomb79/backdrop/internal/fetch"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the backgrounds available in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := background.LoadCatalog(config.CatalogSources())
		if err != nil {
			return err
		}

		cache := fetch.New(config.VideoCacheDir(), config.AudioCacheDir(), nil)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODE\tKEY\tFILE\tCREDIT\tPOSITION\tCACHED")
		for _, key := range catalog.Keys(background.VideoMode) {
			v, _ := catalog.Video(key)
			fmt.Fprintf(w, "video\t%s\t%s\t%s\t%s\t%s\n", key, v.Filename, v.Credit, v.Position, cached(cache.HasVideo(v)))
		}
		for _, key := range catalog.Keys(background.AudioMode) {
			a, _ := catalog.Audio(key)
			fmt.Fprintf(w, "audio\t%s\t%s\t%s\t-\t%s\n", key, a.Filename, a.Credit, cached(cache.HasAudio(a)))
		}

		return w.Flush()
	},
}

func cached(present bool) string {
	if present {
		return "yes"
	}

	return "no"
}
