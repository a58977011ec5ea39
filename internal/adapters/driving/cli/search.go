package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/adapters/driving/format"
	"github.com/custodia-labs/docvault/internal/core/domain"
)

var (
	searchSecurity string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search DATE",
	Short: "Find the document closest to a date",
	Long: `Finds the stored date nearest to DATE (YYYY-MM-DD) and prints the
highest version of the document stored for it. Equally distant dates
resolve to the earlier one.

With --security only documents at that level are considered. The level
is matched case-insensitively, so "top secret" finds documents labelled
"Top Secret" or "TOP SECRET".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchSecurity, "security", "s", "", "restrict to a security level")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	date := args[0]
	if _, err := domain.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %s", err, format.DateHint)
	}

	archive, err := archiveService()
	if err != nil {
		return err
	}

	var view *domain.DocumentView
	if searchSecurity != "" {
		view = archive.FindClosestDateWithSecurity(cmd.Context(), date, domain.NormaliseSecurity(searchSecurity))
	} else {
		view = archive.FindClosestDate(cmd.Context(), date)
	}

	if searchJSON {
		return outputJSON(cmd, view)
	}
	format.Document(cmd.OutOrStdout(), view)
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
