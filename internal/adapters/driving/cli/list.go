package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/adapters/driving/format"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored chunk",
	Long: `Lists every stored chunk ordered by date, then version (newest first,
compared as text), then source and chunk number.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output chunks as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	archive, err := archiveService()
	if err != nil {
		return err
	}

	chunks := archive.ListAll(cmd.Context())
	if listJSON {
		return outputJSON(cmd, chunks)
	}
	format.Chunks(cmd.OutOrStdout(), chunks)
	return nil
}
