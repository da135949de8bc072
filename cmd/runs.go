package cmd

import (
	"crm-sync/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runsOpts history.ListOptions

// runsCmd reads the run ledger.
var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List recorded runs, or show one run with its batches",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsOpts.Kind, "kind", "", "Filter by kind")
	runsCmd.Flags().StringVar(&runsOpts.Status, "status", "", "Filter by status")
	runsCmd.Flags().IntVar(&runsOpts.Limit, "limit", 20, "Maximum runs listed")
	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()
	l := rt.logger

	ctx, stop := signalContext()
	defer stop()

	repo, err := rt.openLedger(ctx)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		run, err := repo.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		l.Info("Run", runFields(run)...)
		for _, b := range run.BatchRecords {
			l.Info("Batch",
				zap.Int("batch", b.Ordinal),
				zap.String("operation", b.Operation),
				zap.Int("size", b.Size),
				zap.Int("status", b.StatusCode),
				zap.String("first_key", b.FirstKey),
				zap.String("last_key", b.LastKey),
				zap.String("error", b.ErrorText),
			)
		}
		return nil
	}

	runs, err := repo.ListRuns(ctx, runsOpts)
	if err != nil {
		return err
	}
	for i := range runs {
		l.Info("Run", runFields(&runs[i])...)
	}
	l.Info("Runs listed", zap.Int("count", len(runs)))
	return nil
}

func runFields(r *history.Run) []zap.Field {
	return []zap.Field{
		zap.String("run_id", r.ID),
		zap.String("kind", r.Kind),
		zap.String("source", r.Source),
		zap.String("status", r.Status),
		zap.Bool("dry_run", r.DryRun),
		zap.Int("rows", r.RowCount),
		zap.Int("written", r.Written),
		zap.Int("archived", r.Archived),
		zap.Int("failed_batches", r.FailedBatches),
		zap.Time("started_at", r.StartedAt),
	}
}
