package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundpairs/internal/history"
	"github.com/zjrosen/soundpairs/internal/infrastructure/sqlite"
)

var (
	historyLimit int
	historyBest  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games",
	Long:  `List recently finished games, or with --best the top scores for the configured grid size.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of games to show")
	historyCmd.Flags().BoolVar(&historyBest, "best", false, "show the best scores for the configured grid")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyLimit < 1 {
		return &UsageError{Err: fmt.Errorf("--limit must be at least 1, got %d", historyLimit)}
	}

	db, err := sqlite.NewDB(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	repo := db.Results()
	var results []*history.Result
	if historyBest {
		results, err = repo.Best(cfg.Rows, cfg.Cols, historyLimit)
	} else {
		results, err = repo.Recent(historyLimit)
	}
	if err != nil {
		return err
	}
	return printResults(cmd.OutOrStdout(), results)
}

func printResults(out io.Writer, results []*history.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(out, "No finished games yet.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FINISHED\tGRID\tSCORE\tMATCHES\tMISSES\tTIME")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.Grid(), r.Score, r.Matches, r.Mismatches,
			r.Duration().Round(time.Second),
		)
	}
	return tw.Flush()
}
