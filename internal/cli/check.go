package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fukayatti/api.fukayatti0.dev/internal/filter"
)

var (
	flagCheckClass  string
	flagCheckKind   string
	flagCheckDate   string
	flagCheckQuery  string
	flagCheckFormat string
	flagCheckSort   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch the bulletin once and print matching records",
	Long: `Fetch the bulletin page, parse it and print the records, optionally
narrowed by class, kind, date or a free-text query. Records keep the
bulletin's own order unless --sort says otherwise.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&flagCheckClass, "class", "", "Only records for these classes (comma separated, e.g. 1-A,3-E)")
	checkCmd.Flags().StringVar(&flagCheckKind, "kind", "", "Only records of these kinds (labels like 休講 or symbols like ◉)")
	checkCmd.Flags().StringVar(&flagCheckDate, "date", "", "Only records for this date (e.g. 1/6(火))")
	checkCmd.Flags().StringVarP(&flagCheckQuery, "query", "q", "", "Only records containing this text")
	checkCmd.Flags().StringVar(&flagCheckFormat, "format", "text", "Output format: text or json")
	checkCmd.Flags().StringVar(&flagCheckSort, "sort", "source", "Record order: source, date or class")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	format := OutputFormat(strings.ToLower(flagCheckFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagCheckFormat)
	}

	order := SortOrder(strings.ToLower(flagCheckSort))
	if order != SortBySource && order != SortByDate && order != SortByClass {
		return fmt.Errorf("invalid sort: %s (must be 'source', 'date' or 'class')", flagCheckSort)
	}

	sc := newScraper()
	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching bulletin from %s\n", sc.URL())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.FetchTimeout)
	defer cancel()

	bl, err := sc.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching bulletin: %w", err)
	}

	f := filter.FromQueryParams(flagCheckClass, flagCheckKind, flagCheckDate, flagCheckQuery)
	if verbose {
		fmt.Fprintf(os.Stderr, "%s\n", f)
	}

	records := f.Apply(bl.Records)
	sortRecords(records, order)

	result := &OutputResult{
		CheckedAt:   time.Now().UTC(),
		SourceURL:   bl.SourceURL,
		Title:       bl.Title,
		Records:     records,
		RecordCount: len(records),
	}
	return WriteOutput(os.Stdout, result, format, verbose)
}
