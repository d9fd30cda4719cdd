package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvactools/chillerselect/internal/core"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the stored catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := svc.Stats(cmd.Context())
		if err != nil {
			exitWithError(err)
		}

		if stats.TotalRows == 0 {
			fmt.Println("Catalog is empty. Run 'chillerselect import' to add rows.")
			return
		}

		fmt.Printf("Catalog: %s rows, %s distinct models\n\n",
			statusColor.Sprintf("%d", stats.TotalRows),
			statusColor.Sprintf("%d", stats.DistinctModels))

		printGroupCounts("By manufacturer", stats.Manufacturers)
		printGroupCounts("By model prefix", stats.ModelPrefixes)
		printGroupCounts("By condition", stats.Conditions)

		if len(stats.Ambients) > 0 {
			fmt.Println("By ambient:")
			for _, a := range stats.Ambients {
				fmt.Printf("  %-25s %5d\n", ftoa(a.AmbientF)+"°F", a.Count)
			}
			fmt.Println()
		}
	},
}

func printGroupCounts(title string, groups []core.GroupCount) {
	if len(groups) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, g := range groups {
		fmt.Printf("  %-25s %5d\n", g.Name, g.Count)
	}
	fmt.Println()
}
