package commands

import (
	"fmt"

	"showscout/lib/configutil"
	"showscout/lib/restyutil"
	"showscout/lib/serviceutil"
	"showscout/services/checker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	fast           bool
	skipHouseSeats bool
	skipFirstTix   bool
	noPush         bool
}{}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one full check of all ticket sources.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[checker.Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config.json5", err)
		}

		// in verbose mode every http exchange gets dumped for
		// debugging selector rot
		var hsOutput, ftOutput restyutil.InstrumentOutput
		if verbose {
			hsOutput = restyutil.NewFilesystemOutput(".dev/resty/houseseats")
			ftOutput = restyutil.NewFilesystemOutput(".dev/resty/firsttix")
		}

		var connectors []checker.Connector
		if !checkFlags.skipHouseSeats {
			conn, err := checker.NewHouseSeatsConnector(cfg.HouseSeats, hsOutput)
			if err != nil {
				serviceutil.Fatal("failed to create houseseats connector", err)
			}
			connectors = append(connectors, conn)
		}
		if !checkFlags.skipFirstTix {
			conn, err := checker.NewFirstTixConnector(cfg.FirstTix, ftOutput)
			if err != nil {
				serviceutil.Fatal("failed to create 1sttix connector", err)
			}
			connectors = append(connectors, conn)
		}

		service := checker.NewService(checker.Options{
			Config:     cfg,
			Connectors: connectors,
			Denylist: []checker.DenylistSource{
				checker.NewGistDenylistSource(cfg.Denylist.GistRawUrl),
				checker.NewFileDenylistSource(checker.DenylistPath(cfg.DataDir)),
			},
			Fast: checkFlags.fast,
			Push: !checkFlags.noPush,
		})

		result := service.Run(cmd.Context())
		printRunSummary(result)
	},
}

func init() {
	checkCmd.Flags().BoolVar(
		&checkFlags.fast, "fast", false,
		"Skip the randomized pauses between requests.",
	)
	checkCmd.Flags().BoolVar(
		&checkFlags.skipHouseSeats, "skip-houseseats", false,
		"Don't check HouseSeats this run.",
	)
	checkCmd.Flags().BoolVar(
		&checkFlags.skipFirstTix, "skip-firsttix", false,
		"Don't check 1stTix this run.",
	)
	checkCmd.Flags().BoolVar(
		&checkFlags.noPush, "no-push", false,
		"Don't push the updated snapshot to the git remote.",
	)
	rootCmd.AddCommand(checkCmd)
}

func printRunSummary(result checker.RunResult) {
	justNotified := make(map[string]bool, len(result.New))
	for _, show := range result.New {
		justNotified[show.Key()] = true
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "Source", "Show", "Date"})
	for _, show := range result.Fresh {
		marker := ""
		if justNotified[show.Key()] {
			marker = "new"
		}
		name := show.Name
		if show.Rare {
			name += " ⭐"
		}
		t.AppendRow(table.Row{marker, show.Source, name, show.Date})
	}
	fmt.Println(t.Render())
	fmt.Printf("%d shows available, %d new\n", len(result.Fresh), len(result.New))
}
