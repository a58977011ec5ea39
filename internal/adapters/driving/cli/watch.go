package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/adapters/driving/format"
)

var watchInitial bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Ingest PDFs as they appear in the PDF directory",
	Long: `Watches the PDF directory and stores each PDF that is created or
rewritten there. Runs in the foreground until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "ingest the directory first if the archive is empty")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	archive, err := archiveService()
	if err != nil {
		return err
	}
	if services.Watch == nil {
		return errors.New("watcher not configured")
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if watchInitial {
		format.Report(out, services.PDFDir, archive.StoreInitialBatch(ctx))
	}

	cmd.Printf("Watching %s for new documents (Ctrl+C to stop)\n", services.PDFDir)
	return services.Watch(ctx, func(ctx context.Context, path string) {
		format.Report(out, filepath.Base(path), archive.StoreFile(ctx, path))
	})
}
