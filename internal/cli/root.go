// Package cli implements the chillerselect command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hvactools/chillerselect/internal/config"
	"github.com/hvactools/chillerselect/internal/core"
	"github.com/hvactools/chillerselect/internal/logging"
	"github.com/hvactools/chillerselect/internal/store"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	warnColor       = color.New(color.FgYellow)
	identifierColor = color.New(color.FgBlue)
)

var (
	cfg *config.Config
	svc *core.Service
)

var rootCmd = &cobra.Command{
	Use:   "chillerselect",
	Short: "Select air-cooled chillers from manufacturer catalog data",
	Long: `chillerselect imports messy catalog spreadsheets (pasted text or files)
and finds the best chiller for a target capacity at a given ambient.

The catalog lives in PostgreSQL when DATABASE_URL is set, otherwise in
a local file (~/.chillerselect/catalog.yaml or CATALOG_PATH).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; missing files are fine
		_ = godotenv.Overload()

		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

		st, err := store.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to open catalog store: %w", err)
		}
		svc = core.NewService(st)
		cobra.OnFinalize(func() { st.Close() })
		return nil
	},
}

// Execute runs the CLI with the given base context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importsCmd)
}

// exitWithError prints the user-facing form of err and stops.
func exitWithError(err error) {
	msg := core.MapError(err)
	errorColor.Fprintln(os.Stderr, msg.Message)
	if msg.Action != "" {
		fmt.Fprintf(os.Stderr, "%s (code %s)\n", msg.Action, msg.Code)
	}
	os.Exit(1)
}

// ftoa renders a float without trailing zeros.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fmtPtr renders an optional numeric with fixed precision, "-" when absent.
func fmtPtr(p *float64, prec int) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', prec, 64)
}
