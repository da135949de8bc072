package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"crm-sync/core/reconcile"
	"crm-sync/feature/ingest"
	syncrun "crm-sync/feature/sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncDryRun bool
	syncYes    bool
)

// syncCmd runs one entity pass over a CSV export.
var syncCmd = &cobra.Command{
	Use:   "sync <kind> <csv>",
	Short: "Synchronize one CSV export into the CRM",
	Long: `Plan and submit one entity pass over a CSV export.

Kinds: deal-create, deal-update, line-item-create, product-create.

The plan (lookups, skipped rows, batches) is always printed first. Remote writes
need confirmation, either interactively or with --yes.

Examples:
  # Plan only
  sync deal-create deals.csv --dry-run

  # Archive existing line items of every slip, then update the deals
  sync deal-update deals.csv --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan only, submit nothing")
	syncCmd.Flags().BoolVar(&syncYes, "yes", false, "Auto-confirm remote writes (non-interactive)")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()
	l := rt.logger

	ctx, stop := signalContext()
	defer stop()

	src, err := ingest.ReadFile(args[1])
	if err != nil {
		return err
	}
	l.Info("Source loaded",
		zap.String("source", src.Name),
		zap.String("encoding", src.Encoding),
		zap.Int("rows", len(src.Table.Rows)),
		zap.Int("warnings", len(src.Warnings)),
	)

	w, err := rt.newService(ctx, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	res, err := w.service.Run(ctx, syncrun.Request{
		Kind:      args[0],
		Source:    src,
		DryRun:    syncDryRun,
		Confirmed: syncYes,
		Confirm: func(p *reconcile.Plan) bool {
			printPlan(l, p)
			if len(p.Batches) == 0 {
				return true
			}
			return confirmDestructiveAction(os.Stdin, os.Stdout)
		},
	})
	if res.Plan != nil && (syncDryRun || syncYes) {
		printPlan(l, res.Plan)
	}
	if errors.Is(err, reconcile.ErrNotConfirmed) {
		l.Warn("Operation cancelled by user. No changes were made.", zap.String("run_id", res.RunID))
		return nil
	}
	if err != nil {
		return err
	}

	if syncDryRun {
		l.Info("Dry-run mode: No changes were made.", zap.String("run_id", res.RunID))
		return nil
	}
	printReport(l, res)
	if res.Status == reconcile.StatusFailed || res.Status == reconcile.StatusPartial {
		return fmt.Errorf("run %s finished %s", res.RunID, res.Status)
	}
	return nil
}

// printPlan prints a plan summary and samples of what was left out.
func printPlan(l *zap.Logger, p *reconcile.Plan) {
	s := p.Summary
	l.Info("Sync plan",
		zap.String("kind", string(p.Kind)),
		zap.Int("rows", s.Rows),
		zap.Int("translated", s.Translated),
		zap.Int("skipped", s.Skipped),
		zap.Int("invalid_values", s.InvalidValues),
		zap.Int("to_archive", s.ToArchive),
		zap.Int("batches", s.Batches),
	)
	for _, w := range p.Warnings {
		l.Warn("Plan warning", zap.String("detail", w))
	}

	maxShow := min(5, len(p.Skipped))
	for _, sk := range p.Skipped[:maxShow] {
		l.Info("Skipped row", zap.Int("line", sk.Line), zap.String("key", sk.Key), zap.String("reason", sk.Reason))
	}
	if len(p.Skipped) > maxShow {
		l.Info("Additional skipped rows not shown", zap.Int("count", len(p.Skipped)-maxShow))
	}
}

func printReport(l *zap.Logger, res *syncrun.Result) {
	r := res.Report
	if r == nil {
		return
	}
	l.Info("Sync report",
		zap.String("run_id", res.RunID),
		zap.String("status", res.Status),
		zap.Int("written", r.Written),
		zap.Int("archived", r.Archived),
		zap.Int("batches", len(r.Batches)),
		zap.Int("failed_batches", r.Failed),
	)
	for _, b := range r.Batches {
		if b.Failed() {
			l.Warn("Failed batch",
				zap.Int("batch", b.Ordinal),
				zap.String("first_key", b.FirstKey),
				zap.String("last_key", b.LastKey),
				zap.String("error", b.ErrorText()),
			)
		}
	}
}

// confirmDestructiveAction prompts on out and reads the answer from in.
func confirmDestructiveAction(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "\nType 'yes' to submit these batches to the CRM: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
