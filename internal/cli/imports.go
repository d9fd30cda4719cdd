package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hvactools/chillerselect/internal/core"
)

var resetYes bool

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "List import history",
	Long: `Imports lists every import batch, newest first, with its status.
Rolled-back batches stay in the history but their rows are gone.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := svc.Imports(cmd.Context())
		if err != nil {
			exitWithError(err)
		}

		if len(records) == 0 {
			fmt.Println("No imports yet.")
			return
		}

		fmt.Printf("%-36s %-16s %5s %-11s %-22s %s\n",
			"ID", "CREATED", "ROWS", "STATUS", "CONDITION", "LABEL")
		for _, rec := range records {
			status := successColor.Sprint(rec.Status)
			if rec.Status == core.ImportStatusRolledBack {
				status = errorColor.Sprint(rec.Status)
			}
			fmt.Printf("%-36s %-16s %5d %-11s %-22s %s\n",
				identifierColor.Sprint(rec.ID),
				rec.CreatedAt.Local().Format("2006-01-02 15:04"),
				rec.RowCount,
				status,
				core.ConditionLabel(rec.Conditions),
				rec.Label)
		}
	},
}

var importsRollbackCmd = &cobra.Command{
	Use:     "rollback <import-id>",
	Short:   "Delete every row from one import batch",
	Example: `  chillerselect imports rollback 6f1c9a52-8a1e-4f7d-9c3b-2e5d8a90c4f1`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := svc.Rollback(cmd.Context(), args[0])
		if err != nil {
			exitWithError(err)
		}
		successColor.Printf("Rolled back import %s\n", res.ImportID)
		fmt.Printf("%d rows deleted\n", res.RowsDeleted)
	},
}

var importsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the entire catalog and import history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes {
			warnColor.Fprintln(os.Stderr, "reset deletes every catalog row and import record")
			fmt.Fprintln(os.Stderr, "re-run with --yes to confirm")
			os.Exit(1)
		}
		if err := svc.Reset(cmd.Context()); err != nil {
			exitWithError(err)
		}
		successColor.Println("Catalog cleared")
	},
}

func init() {
	importsResetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deletion without prompting")
	importsCmd.AddCommand(importsRollbackCmd)
	importsCmd.AddCommand(importsResetCmd)
}
