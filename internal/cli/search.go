package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hvactools/chillerselect/internal/core"
)

var (
	searchTons    float64
	searchAmbient float64
	searchEWT     float64
	searchLWT     float64
	searchCSV     string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the best chiller for a target capacity",
	Long: `Search ranks catalog rows at the requested ambient against a target
capacity. Rows within ±10% of the target are considered first; if none
match, the band widens to ±20% before giving up.

The best pick is the closest capacity, with temperature distance,
efficiency, and waterflow breaking ties.`,
	Example: `  chillerselect search --tons 85 --ambient 95
  chillerselect search --tons 120 --ambient 104.5 --ewt 13 --lwt 8
  chillerselect search --tons 85 --ambient 95 --csv comparison.csv`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ewt, lwt := searchEWT, searchLWT
		if ewt == 0 {
			ewt = cfg.Catalog.DefaultEWT
		}
		if lwt == 0 {
			lwt = cfg.Catalog.DefaultLWT
		}

		resp, err := svc.Search(cmd.Context(), core.Query{
			TargetTons: searchTons,
			AmbientF:   searchAmbient,
			EWTC:       ewt,
			LWTC:       lwt,
		})
		if err != nil {
			exitWithError(err)
		}

		printSearchResponse(resp)

		if searchCSV != "" && resp.Results.Outcome == core.OutcomeMatched {
			if err := writeSearchCSV(searchCSV, resp.Results.Matches); err != nil {
				exitWithError(err)
			}
			fmt.Printf("Comparison written to %s\n", identifierColor.Sprint(searchCSV))
		}
	},
}

func init() {
	searchCmd.Flags().Float64Var(&searchTons, "tons", 0, "target cooling capacity in tons")
	searchCmd.Flags().Float64Var(&searchAmbient, "ambient", 0, "ambient temperature in °F")
	searchCmd.Flags().Float64Var(&searchEWT, "ewt", 0, "entering water temperature in °C (default 12)")
	searchCmd.Flags().Float64Var(&searchLWT, "lwt", 0, "leaving water temperature in °C (default 7)")
	searchCmd.Flags().StringVar(&searchCSV, "csv", "", "write the ranked matches to a CSV file")
	searchCmd.MarkFlagRequired("tons")
	searchCmd.MarkFlagRequired("ambient")
}

func printSearchResponse(resp *core.SearchResponse) {
	res := resp.Results
	sum := res.Summary

	switch res.Outcome {
	case core.OutcomeNoAmbientMatch:
		errorColor.Printf("No catalog rows at %s°F ambient.\n", ftoa(sum.AmbientF))
		if len(res.AvailableAmbients) > 0 {
			fmt.Print("Available ambients: ")
			for i, a := range res.AvailableAmbients {
				if i > 0 {
					fmt.Print(", ")
				}
				statusColor.Printf("%s°F", ftoa(a))
			}
			fmt.Println()
		}
		if len(resp.Suggestions) > 0 {
			fmt.Println("\nSame target at other ambients:")
			for _, s := range resp.Suggestions {
				fmt.Printf("  %6s°F  %d matches within ±%.0f%%\n",
					ftoa(s.AmbientF), s.MatchCount, s.Tolerance*100)
			}
		}

	case core.OutcomeNoCapacityMatch:
		errorColor.Printf("No chillers between %.1f and %.1f tons at %s°F ambient.\n",
			sum.BandLow, sum.BandHigh, ftoa(sum.AmbientF))
		fmt.Println("Try a different capacity, or import more catalog data.")

	case core.OutcomeMatched:
		fmt.Printf("%d matches within ±%.0f%% (%.1f to %.1f tons) at %s°F\n\n",
			sum.MatchCount, sum.Tolerance*100, sum.BandLow, sum.BandHigh, ftoa(sum.AmbientF))

		successColor.Printf("Best pick: %s", res.Best.Model)
		fmt.Printf("  %s tons, %s kW/ton\n", ftoa(res.Best.CapacityTons), ftoa(res.Best.Efficiency))
		if res.Above != nil {
			fmt.Printf("One size up:   %-14s %s tons\n", res.Above.Model, ftoa(res.Above.CapacityTons))
		}
		if res.Below != nil {
			fmt.Printf("One size down: %-14s %s tons\n", res.Below.Model, ftoa(res.Below.CapacityTons))
		}

		fmt.Println()
		printMatchTable(res.Matches)
	}
}

func printMatchTable(rows []core.CatalogRow) {
	fmt.Printf("%-4s %-16s %-14s %8s %8s %8s %9s\n",
		"#", "MODEL", "MANUFACTURER", "TONS", "KW/TON", "IPLV", "GPM")
	for i, r := range rows {
		fmt.Printf("%-4d %-16s %-14s %8s %8s %8s %9s\n",
			i+1, r.Model, r.Manufacturer,
			ftoa(r.CapacityTons), ftoa(r.Efficiency),
			fmtPtr(r.IPLV, 3), fmtPtr(r.Waterflow, 1))
	}
}

func writeSearchCSV(path string, rows []core.CatalogRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	if err := core.WriteResultsCSV(f, rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return f.Close()
}
