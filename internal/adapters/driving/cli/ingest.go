package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/adapters/driving/format"
)

var ingestFile string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Store documents from the PDF directory",
	Long: `Loads every PDF in the PDF directory, splits it into chunks and stores
chunks whose Keywords carry a date, version and security level.

The directory is only ingested while the archive is empty. Use --file to
add a single PDF to an archive that already holds documents.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "ingest a single PDF")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	archive, err := archiveService()
	if err != nil {
		return err
	}

	if ingestFile == "" {
		report := archive.StoreInitialBatch(cmd.Context())
		format.Report(cmd.OutOrStdout(), services.PDFDir, report)
		return nil
	}

	info, err := os.Stat(ingestFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", ingestFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", ingestFile)
	}

	report := archive.StoreFile(cmd.Context(), ingestFile)
	format.Report(cmd.OutOrStdout(), filepath.Base(ingestFile), report)
	return nil
}
