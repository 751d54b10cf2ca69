package commands

import (
	"fmt"

	"showscout/lib/configutil"
	"showscout/lib/serviceutil"
	"showscout/services/checker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "Print the available shows from the last completed check.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[checker.Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config.json5", err)
		}

		snapshot := checker.LoadSnapshot(checker.SnapshotPath(cfg.DataDir))
		if snapshot.Count == 0 {
			fmt.Println("No saved shows. Run `showscout check` first.")
			return
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Source", "Show", "Date"})
		for _, show := range snapshot.Shows {
			name := show.Name
			if show.Rare {
				name += " ⭐"
			}
			t.AppendRow(table.Row{show.Source, name, show.Date})
		}
		fmt.Println(t.Render())

		fmt.Printf("%d shows, last updated %s\n", snapshot.Count, snapshot.LastUpdated)
		for source, stamp := range snapshot.LastUpdatedBySource {
			fmt.Printf("  %s: %s\n", source, stamp)
		}
	},
}

func init() {
	rootCmd.AddCommand(showsCmd)
}
