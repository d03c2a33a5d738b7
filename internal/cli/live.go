package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/muninn/internal/tui"
	"github.com/aidanlsb/muninn/internal/ui"
)

var (
	liveWatch bool
	liveDebug bool
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Search interactively as you type",
	Long: `Live opens a full-screen search over the vault. Results update as you
type: each keystroke restarts a short settle timer, and a still-running scan
for the previous input is cancelled as soon as a new one starts.

With --watch, editing a note while the search is open re-runs the current
query so results never go stale.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return fmt.Errorf("live mode has no JSON output; use 'mnn search --json'")
		}
		if !ui.IsTTY() {
			return fmt.Errorf("live mode requires a terminal")
		}

		return tui.Run(tui.Options{
			VaultPath: getVaultPath(),
			Config:    cfg,
			Watch:     liveWatch,
			Debug:     liveDebug,
		})
	},
}

func init() {
	liveCmd.Flags().BoolVarP(&liveWatch, "watch", "w", false, "Re-run the query when notes change on disk")
	liveCmd.Flags().BoolVar(&liveDebug, "debug", false, "Log watcher events to stderr")
	rootCmd.AddCommand(liveCmd)
}
