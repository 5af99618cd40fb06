package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fukayatti/api.fukayatti0.dev/internal/config"
	"github.com/fukayatti/api.fukayatti0.dev/internal/logger"
	"github.com/fukayatti/api.fukayatti0.dev/internal/scraper"
)

// Exit codes. ExitNewRecords is reserved for watch --once so cron jobs
// can branch on "something changed".
const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitNewRecords = 2
)

var (
	cfgFile string
	verbose bool

	cfg    config.Config
	cfgErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kyuko-api",
	Short: "Serve and watch the 茨城高専 cancellation bulletin",
	Long: `kyuko-api scrapes the school's 休講・授業変更 (class cancellation and
change) bulletin, parses it into structured records and exposes them as a
JSON API, an iCalendar feed and notification channels.

The upstream page is polite-crawled: requests are rate limited, carry an
identifying User-Agent and honor timeouts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.kyuko-api/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig loads configuration and wires the default logger. Load
// errors are kept for commands to report; OnInitialize cannot fail.
func initConfig() {
	cfg, cfgErr = config.Load(cfgFile)
	if cfgErr != nil {
		return
	}

	level := logger.ParseLevel(cfg.Server.LogLevel)
	if verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))
}

func requireConfig() error {
	if cfgErr != nil {
		return fmt.Errorf("loading configuration: %w", cfgErr)
	}
	return nil
}

// newScraper builds a scraper from the loaded configuration.
func newScraper() *scraper.Scraper {
	return scraper.New(scraper.Options{
		URL:            cfg.Upstream.URL,
		UserAgent:      cfg.Upstream.UserAgent,
		Timeout:        cfg.Upstream.Timeout,
		MaxBodyBytes:   cfg.Upstream.MaxBodyBytes,
		RequestsPerSec: cfg.Upstream.RequestsPerSec,
	})
}
