// Package cmd provides the CLI commands for retail-analytics.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"retail-analytics/internal/config"
	"retail-analytics/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "retail-analytics",
	Short: "Aggregate retail sales data into analytics reports",
	Long: `retail-analytics is a deterministic sales analytics engine.

It ingests customer, product and transaction data and produces revenue,
trend, segmentation and retention reports with exact decimal arithmetic.

Examples:
  retail-analytics analyze ./data
  retail-analytics analyze --format json ./data
  retail-analytics export --out ./reports ./data
  retail-analytics query "SELECT category, COUNT(*) FROM products GROUP BY category"`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.retail-analytics.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("retail-analytics version " + config.Get().Version)
	},
}
