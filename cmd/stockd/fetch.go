package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prasertk/stockd/internal/logger"
	"github.com/prasertk/stockd/internal/metrics"
	"github.com/prasertk/stockd/internal/provider/yahoo"
	"github.com/prasertk/stockd/internal/service"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch SYMBOL...",
	Short: "Fetch normalized quotes for one or more symbols",
	Long: `Fetch quotes for the given symbols and print the batch result as JSON.
Symbols that cannot be fetched come back as fallback records, not errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	prov := yahoo.New(yahoo.Config{
		BaseURL:   cfg.Provider.BaseURL,
		Timeout:   cfg.Provider.Timeout,
		UserAgent: cfg.Provider.UserAgent,
	})
	svc := service.New(prov, metrics.NewRegistry(), log, cfg.Batch.Concurrency)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := svc.FetchAll(ctx, args)
	if err != nil {
		return fmt.Errorf("fetching quotes: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
