package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

var rootCmd = &cobra.Command{
	Use:   "trackseed",
	Short: "Generate the tracking seed migration from a spreadsheet",
	Long: `trackseed reads the shipment tracking spreadsheet and writes one idempotent
upsert per shipment into a SQL migration for public.adyam_tracking.

Rows without an AWB number are skipped. Blank, "nan" and unparseable cells
become NULL. Running the migration twice leaves the table unchanged apart
from status and last_location.

Configuration precedence:
  flag > environment variable > trackseed.yaml > built-in default

Exit Codes:
  0  - Success
  1  - General error (dataset unreadable or migration not written)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration`,
	Args:          usageArgs(cobra.NoArgs),
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	err := rootCmd.Execute()
	// Dataset errors are already reported on stdout by runGenerate.
	if err != nil && !errors.Is(err, trackseed.ErrSourceRead) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", trackseed.ErrUsage, err)
	})
}

// usageArgs marks positional argument failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", trackseed.ErrUsage, err)
		}
		return nil
	}
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
