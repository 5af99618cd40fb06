package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
	"github.com/fukayatti/api.fukayatti0.dev/internal/logger"
	"github.com/fukayatti/api.fukayatti0.dev/internal/notifier"
	"github.com/fukayatti/api.fukayatti0.dev/internal/scraper"
	"github.com/fukayatti/api.fukayatti0.dev/internal/snapshot"
)

var (
	flagWatchInterval time.Duration
	flagWatchOnce     bool
	flagWatchDryRun   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the bulletin and announce new records",
	Long: `Poll the bulletin on an interval, compare it against the last snapshot
and hand newly published records to the configured notify channel
(dryrun, twitter or telegram).

With --once a single poll runs and the process exits; exit code 2 means
new records were found, which makes the command easy to drive from cron.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 0, "Poll interval (overrides configuration)")
	watchCmd.Flags().BoolVar(&flagWatchOnce, "once", false, "Poll a single time and exit")
	watchCmd.Flags().BoolVar(&flagWatchDryRun, "dry-run", false, "Print notifications instead of sending them")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	interval := cfg.Watch.Interval
	if flagWatchInterval > 0 {
		interval = flagWatchInterval
	}

	store, err := snapshot.NewStore(cfg.Watch.DataDir)
	if err != nil {
		return fmt.Errorf("initializing snapshot store: %w", err)
	}

	n, err := buildNotifier()
	if err != nil {
		return err
	}

	sc := newScraper()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagWatchOnce {
		fresh, err := pollOnce(ctx, sc, store, n)
		if err != nil {
			return err
		}
		if len(fresh) > 0 {
			os.Exit(ExitNewRecords)
		}
		return nil
	}

	logger.Info("watch loop started", logger.Fields{"interval": interval.String()})
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := pollOnce(ctx, sc, store, n); err != nil {
			logger.Error("poll failed", nil, err)
		}

		select {
		case <-ctx.Done():
			logger.Info("watch loop stopped", nil)
			return nil
		case <-ticker.C:
		}
	}
}

// pollOnce fetches the bulletin, announces records the snapshot has not
// seen and persists the new snapshot. Notifications go out before the
// snapshot is saved, so a failed send is retried on the next poll rather
// than silently dropped.
func pollOnce(ctx context.Context, sc *scraper.Scraper, store *snapshot.Store, n notifier.Notifier) ([]bulletin.Record, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Server.FetchTimeout)
	defer cancel()

	bl, err := sc.Fetch(fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("fetching bulletin: %w", err)
	}

	previous, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	fresh := snapshot.Diff(previous, bl.Records)
	logger.Info("bulletin polled", logger.Fields{
		"records": len(bl.Records),
		"new":     len(fresh),
	})
	logger.SetGauge("watch.new_records", float64(len(fresh)))

	if len(fresh) > 0 {
		if err := n.Notify(fresh); err != nil {
			return nil, fmt.Errorf("sending notifications: %w", err)
		}
		logger.IncrCounter("watch.notifications")
	}

	if err := store.Save(snapshot.FromRecords(bl.Records)); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	return fresh, nil
}

// buildNotifier picks the notify channel from configuration. Credentials
// stay in the environment: TELEGRAM_BOT_TOKEN for telegram, the four
// TWITTER_* variables for twitter.
func buildNotifier() (notifier.Notifier, error) {
	if flagWatchDryRun {
		return notifier.NewDryRunNotifier(nil), nil
	}

	switch strings.ToLower(cfg.Notify.Channel) {
	case "", "dryrun", "dry-run":
		return notifier.NewDryRunNotifier(nil), nil
	case "twitter":
		return notifier.NewTwitterNotifier()
	case "telegram":
		chatID := cfg.Notify.TelegramChatID
		if chatID == "" {
			chatID = os.Getenv("TELEGRAM_CHAT_ID")
		}
		return notifier.NewTelegramNotifier(os.Getenv("TELEGRAM_BOT_TOKEN"), chatID)
	default:
		return nil, fmt.Errorf("unknown notify channel: %s", cfg.Notify.Channel)
	}
}
