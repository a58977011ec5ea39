package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docvault/internal/adapters/driving/format"
	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
)

// Menu choices.
const (
	ChoiceStore          = "1"
	ChoiceSearch         = "2"
	ChoiceSearchSecurity = "3"
	ChoiceList           = "4"
	ChoiceClear          = "5"
	ChoiceExit           = "6"
)

// Shell runs the menu loop over a reader and a writer.
type Shell struct {
	archive driving.ArchiveService
	in      *bufio.Scanner
	out     io.Writer
}

// New creates a shell reading choices from in and printing to out.
func New(archive driving.ArchiveService, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		archive: archive,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, ok := s.prompt("\nEnter your choice (1-6): ")
		if !ok {
			return s.in.Err()
		}

		switch choice {
		case ChoiceStore:
			s.store(ctx)
		case ChoiceSearch:
			s.search(ctx, false)
		case ChoiceSearchSecurity:
			s.search(ctx, true)
		case ChoiceList:
			format.Chunks(s.out, s.archive.ListAll(ctx))
		case ChoiceClear:
			s.clear(ctx)
		case ChoiceExit:
			fmt.Fprintf(s.out, "\n%s\n", format.Goodbye)
			return nil
		default:
			fmt.Fprintln(s.out, "\nInvalid choice. Please try again.")
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintf(s.out, "\n%s\n", format.Title)
	fmt.Fprintln(s.out, strings.Repeat("-", 50))
	for i, item := range format.MenuItems {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, item)
	}
}

func (s *Shell) store(ctx context.Context) {
	fmt.Fprintln(s.out, "\n"+format.Storing)
	format.Report(s.out, "Ingest", s.archive.StoreInitialBatch(ctx))
}

func (s *Shell) search(ctx context.Context, withSecurity bool) {
	date, ok := s.prompt(format.DatePrompt)
	if !ok {
		return
	}
	if _, err := domain.ParseDate(date); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		fmt.Fprintln(s.out, format.DateHint)
		return
	}

	if !withSecurity {
		format.Document(s.out, s.archive.FindClosestDate(ctx, date))
		return
	}

	level, ok := s.prompt(format.SecurityPrompt)
	if !ok {
		return
	}
	level = domain.NormaliseSecurity(level)
	format.Document(s.out, s.archive.FindClosestDateWithSecurity(ctx, date, level))
}

func (s *Shell) clear(ctx context.Context) {
	answer, ok := s.prompt(format.ConfirmPrompt)
	if !ok || !strings.EqualFold(answer, "y") {
		return
	}
	if s.archive.Clear(ctx) {
		fmt.Fprintln(s.out, format.Cleared)
	}
}

// prompt prints label and reads one trimmed line.
// Returns false at end of input.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
