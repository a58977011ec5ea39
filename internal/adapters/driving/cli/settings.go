package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in config.toml.

Flags given on the command line take precedence over these settings.`,
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a single setting",
	Long: `Change a single setting and save it to config.toml.

Keys:
  storage.data_dir             directory holding documents.db
  ingest.pdf_dir               directory scanned for PDF files
  pipeline.processors          comma-separated post-processor names
  pipeline.chunker.chunk_size  maximum chunk length in characters
  pipeline.chunker.overlap     characters carried into the next chunk`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data directory: %s\n", settings.Storage.DataDir)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  PDF directory: %s\n", settings.Ingest.PDFDir)
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Processors: %s\n", strings.Join(settings.Pipeline.Processors, ", "))
	if chunker := settings.Pipeline.GetProcessorConfig("chunker"); chunker != nil {
		cmd.Printf("  Chunk size: %v\n", chunker["chunk_size"])
		cmd.Printf("  Chunk overlap: %v\n", chunker["overlap"])
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", svc.ConfigPath())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := svc.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(svc.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
