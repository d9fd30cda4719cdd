package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hvactools/chillerselect/internal/core"
)

var (
	importFile    string
	importText    string
	importLabel   string
	importAmbient float64
	importEWT     float64
	importLWT     float64
	importPreview bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import catalog rows from a file, flag, or stdin",
	Long: `Import parses tab- or comma-delimited catalog text and stores the
valid rows. Every row in one import shares the ambient and water
temperatures given on the command line.

Input comes from --file, --text, or stdin, in that order of precedence.`,
	Example: `  chillerselect import --file catalog.tsv --ambient 95
  chillerselect import --text "$(pbpaste)" --ambient 95 --label "ACH 2026"
  cat catalog.tsv | chillerselect import --ambient 104.5 --ewt 13 --lwt 8 --preview`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		text, source, err := readImportText()
		if err != nil {
			exitWithError(err)
		}

		ewt, lwt := importEWT, importLWT
		if ewt == 0 {
			ewt = cfg.Catalog.DefaultEWT
		}
		if lwt == 0 {
			lwt = cfg.Catalog.DefaultLWT
		}

		res, err := svc.Import(cmd.Context(), core.ImportRequest{
			Text:   text,
			Source: source,
			Label:  importLabel,
			Conditions: core.Conditions{
				AmbientF: importAmbient,
				EWTC:     ewt,
				LWTC:     lwt,
			},
			Preview: importPreview,
		})
		if err != nil {
			exitWithError(err)
		}

		printImportResult(res)
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to a catalog file")
	importCmd.Flags().StringVar(&importText, "text", "", "catalog text passed inline")
	importCmd.Flags().StringVar(&importLabel, "label", "", "name for this import batch")
	importCmd.Flags().Float64Var(&importAmbient, "ambient", 0, "ambient temperature in °F the rows were rated at")
	importCmd.Flags().Float64Var(&importEWT, "ewt", 0, "entering water temperature in °C (default 12)")
	importCmd.Flags().Float64Var(&importLWT, "lwt", 0, "leaving water temperature in °C (default 7)")
	importCmd.Flags().BoolVar(&importPreview, "preview", false, "parse and validate without storing anything")
	importCmd.MarkFlagRequired("ambient")
}

// readImportText resolves the input source: --file wins, then --text,
// then stdin.
func readImportText() (text, source string, err error) {
	switch {
	case importFile != "":
		text, err = core.ReadInputFile(importFile)
		return text, importFile, err
	case importText != "":
		return importText, "paste", nil
	default:
		text, err = core.ReadInput(os.Stdin, core.DefaultMaxInputBytes)
		return text, "stdin", err
	}
}

func printImportResult(res *core.ImportResult) {
	label := core.ConditionLabel(res.Conditions)

	if res.Preview {
		warnColor.Println("preview only: nothing was stored")
	}

	fmt.Printf("Parsed %d data rows at %s\n", res.TotalRows, statusColor.Sprint(label))
	if res.Preview {
		successColor.Printf("%d rows valid\n", len(res.Rows))
	} else {
		successColor.Printf("%d rows imported\n", res.Inserted)
		fmt.Printf("Import ID: %s\n", identifierColor.Sprint(res.ImportID))
	}

	if len(res.Failed) > 0 {
		warnColor.Printf("%d rows rejected:\n", len(res.Failed))
		for _, f := range res.Failed {
			fmt.Printf("  line %-4d %s\n", f.LineNumber, f.Reason)
		}
	}
}
