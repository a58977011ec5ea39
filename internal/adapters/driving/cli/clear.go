package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/adapters/driving/format"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored chunk",
	Long: `Removes every stored chunk from the archive. Asks for confirmation
unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	archive, err := archiveService()
	if err != nil {
		return err
	}

	if !clearYes {
		cmd.Print(format.ConfirmPrompt)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if !archive.Clear(cmd.Context()) {
		return errors.New("clearing database failed")
	}
	cmd.Println(format.Cleared)
	return nil
}
