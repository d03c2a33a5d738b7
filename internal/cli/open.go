package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/muninn/internal/vault"
)

var openCmd = &cobra.Command{
	Use:   "open <note>",
	Short: "Open a note in your editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notePath := args[0]
		if !filepath.IsAbs(notePath) {
			notePath = filepath.Join(getVaultPath(), notePath)
		}
		if _, err := os.Stat(notePath); err != nil {
			return fmt.Errorf("note not found: %s", args[0])
		}

		vault.OpenInEditorOrPrintPath(cfg.GetEditor(), notePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
