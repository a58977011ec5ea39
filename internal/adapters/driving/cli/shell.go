package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docvault/internal/adapters/driving/shell"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
	"github.com/custodia-labs/docvault/internal/logger"
)

// tuiLogFile receives log output while the TUI owns the screen.
const tuiLogFile = "docvault.log"

var shellLine bool

var shellCmd = &cobra.Command{
	Use:     "shell",
	Aliases: []string{"tui"},
	Short:   "Open the interactive menu",
	Long: `Open the interactive archive menu.

On a terminal this is a full-screen menu:
  ↑/k, ↓/j - Navigate
  1-6      - Choose an item directly
  Enter    - Select / Submit
  Esc      - Back
  q        - Quit

When stdin is not a terminal, or with --line, a numbered prompt is read
line by line so the menu can be scripted.`,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&shellLine, "line", false, "use the line-oriented menu even on a terminal")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	archive, err := archiveService()
	if err != nil {
		return err
	}

	if !shellLine && isTerminal(cmd.InOrStdin()) {
		return runTUI(cmd, archive)
	}
	return shell.New(archive, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runTUI(cmd *cobra.Command, archive driving.ArchiveService) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	// Log lines would corrupt the alternate screen.
	restore := redirectLogs(services.DataDir)
	defer restore()

	app, err := tui.NewApp(tui.NewPorts(archive))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends log output to dataDir/docvault.log, or discards it
// when the file cannot be opened. The returned func restores the
// previous output.
func redirectLogs(dataDir string) func() {
	f, err := os.OpenFile(filepath.Join(dataDir, tuiLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		prev := logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(prev) }
	}

	prev := logger.SetOutput(f)
	return func() {
		logger.SetOutput(prev)
		_ = f.Close()
	}
}
