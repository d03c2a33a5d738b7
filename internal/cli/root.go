// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/muninn/internal/config"
	"github.com/aidanlsb/muninn/internal/ui"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path (rare)
	configPath    string

	// Resolved values
	resolvedVaultPath string
	cfg               *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mnn",
	Short: "Muninn - live search for your notes",
	Long: `Muninn searches a vault of plain markdown files as you type: no index,
no setup, just a fast linear scan with instant cancellation of stale queries.

Named for Odin's raven Muninn (memory), who was sent out each day
and always found his way back with what was sought.`,
}

// rootPersistentPreRunE is assigned to rootCmd in init to avoid an
// initialization cycle (it calls handleError, which references rootCmd).
func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	// Skip vault resolution for commands that don't need it
	switch cmd.Name() {
	case "completion", "help", "version":
		return nil
	}
	if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
		return nil
	}

	// Load config
	var err error
	cfg, err = loadGlobalConfig()
	if err != nil {
		return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err))
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	ui.ConfigureTheme(cfg.UI.Accent)

	// Resolve vault path: explicit path > named vault > default
	if vaultPathFlag != "" {
		resolvedVaultPath = vaultPathFlag
	} else if vaultName != "" {
		resolvedVaultPath, err = cfg.GetVaultPath(vaultName)
		if err != nil {
			return handleError(ErrVaultNotFound, fmt.Errorf("vault '%s' not found in config", vaultName))
		}
	} else {
		resolvedVaultPath, err = cfg.GetDefaultVaultPath()
		if err != nil {
			return handleError(ErrVaultNotSpecified, fmt.Errorf(`no vault specified

Either:
  1. Use --vault <name> (from config)
  2. Use --vault-path /path/to/vault
  3. Set default_vault in ~/.config/muninn/config.toml`))
		}
	}

	// Verify vault exists
	if _, err := os.Stat(resolvedVaultPath); os.IsNotExist(err) {
		return handleError(ErrVaultNotFound, fmt.Errorf("vault not found: %s", resolvedVaultPath))
	}

	return nil
}

func loadGlobalConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func getVaultPath() string {
	return resolvedVaultPath
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultName, "vault", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit vault directory path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.SilenceUsage = true
	rootCmd.PersistentPreRunE = rootPersistentPreRunE
}
