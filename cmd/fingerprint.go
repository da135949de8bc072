package cmd

import (
	"fmt"

	"crm-sync/feature/ingest"
	syncrun "crm-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fingerprintOut string

// fingerprintCmd writes both digest columns back into a CSV export.
var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <kind> <csv>",
	Short: "Write sha512 and sha512_contents columns into a CSV export",
	Long: `Compute the full and business-content digests of every row and write them
back as the sha512 and sha512_contents columns, appending the columns when absent.
The file keeps its original encoding. Without --out the input is replaced, unless
reading it padded or truncated any row; such a file is only written to --out.`,
	Args: cobra.ExactArgs(2),
	RunE: runFingerprint,
}

func init() {
	fingerprintCmd.Flags().StringVar(&fingerprintOut, "out", "", "Output path (default: overwrite the input)")
	RootCmd.AddCommand(fingerprintCmd)
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	d, err := syncrun.Descriptor(args[0], rt.cfg.Sync)
	if err != nil {
		return err
	}
	if d.Fingerprint == nil {
		return fmt.Errorf("kind %s has no fingerprint", d.Kind)
	}

	src, err := ingest.ReadFile(args[1])
	if err != nil {
		return err
	}
	if err := d.Fingerprint.Validate(src.Table.Header); err != nil {
		return err
	}

	out := fingerprintOut
	if out == "" {
		if len(src.Warnings) > 0 {
			for _, w := range src.Warnings {
				rt.logger.Warn("Irregular row", zap.Int("line", w.Line), zap.String("message", w.Message))
			}
			return fmt.Errorf("%s has %d irregular rows, refusing to overwrite it; pass --out", args[1], len(src.Warnings))
		}
		out = args[1]
	}
	if err := ingest.WriteFile(out, d.Fingerprint.Stamp(src.Table), src.Encoding); err != nil {
		return err
	}

	rt.logger.Info("Fingerprints written",
		zap.String("kind", string(d.Kind)),
		zap.String("out", out),
		zap.String("encoding", src.Encoding),
		zap.Int("rows", len(src.Table.Rows)),
	)
	return nil
}
