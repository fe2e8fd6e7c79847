package cmd

import (
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"

	config "github.com/uioperator/uictl/config"
	logger "github.com/uioperator/uictl/internal/logger"

	// Display backends register themselves on import.
	_ "github.com/uioperator/uictl/internal/display/macos"
	_ "github.com/uioperator/uictl/internal/display/wayland"
	_ "github.com/uioperator/uictl/internal/display/x11"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "uictl",
	Short: "Screen control with hierarchical grid addressing",
	Long: `uictl drives the mouse, keyboard, and screen through a hierarchical
grid coordinate system. The screen is divided into labeled cells ("B2"),
and any cell can be subdivided again ("B2.A1") for progressively finer
targeting without pixel arithmetic.

Run 'uictl serve' to expose the tools over MCP, or use the 'grid'
commands to inspect and convert coordinates directly.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	logger.Init(verbose)

	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	loaded, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
}
