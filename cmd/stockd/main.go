package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "stockd",
	Short: "stockd - stock market data normalization service",
	Long: `stockd fetches quotes, fundamentals and price history from Yahoo Finance
and serves them through a normalized JSON API. Symbols that cannot be
fetched come back as deterministic fallback records instead of errors.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
