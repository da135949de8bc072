package cmd

import (
	"fmt"
	"os"

	"crm-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir  string
	configFile string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "crm-sync",
	Short: "Accounting export to CRM synchronizer",
	Long: `crm-sync pushes deals, line items and products from the accounting CSV
export into the CRM object store, fingerprinting rows and recording every run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives ISO8601 timestamps for CLI output
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "dir", ".", "Directory holding .env and config.yaml")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Explicit YAML config file")
}
