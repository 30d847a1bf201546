package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/workflow"
	"github.com/spf13/cobra"
)

// errGenerateFailed is the single message shown for any aborting workflow error.
var errGenerateFailed = errors.New("failed to generate flashcards, please try again")

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		file   string
		reveal bool
	)

	cmd := &cobra.Command{
		Use:   "generate [notes...]",
		Short: "Generate flashcards from notes, save them and show the stored set",
		Example: `  notecards generate "The mitochondria is the powerhouse of the cell."
  notecards generate --file lecture.txt --reveal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := readNotes(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			wf, err := workflow.New(c.client, c.client, c.client,
				workflow.WithLogger(c.logger),
				workflow.WithCallTimeout(c.timeout))
			if err != nil {
				return err
			}

			fmt.Fprintln(c.out, "Generating flashcards...")
			result, err := wf.GenerateAndPersist(cmd.Context(), notes)
			if err != nil {
				if errors.Is(err, workflow.ErrEmptyNotes) {
					return errors.New("please enter some notes")
				}
				c.logger.Debug("workflow aborted", "error", err)
				return errGenerateFailed
			}

			for _, w := range result.Warnings() {
				fmt.Fprintf(c.errOut, "warning: card %d was not saved: %v\n", w.Index+1, w.Err)
			}
			printCards(c.out, result.Records, reveal)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read notes from a file (- for stdin)")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "show answers")
	return cmd
}

// readNotes returns the notes from args or, when file is set, from the file.
func readNotes(args []string, file string, stdin io.Reader) (string, error) {
	if file == "" {
		return strings.Join(args, " "), nil
	}
	if len(args) > 0 {
		return "", errors.New("pass notes as arguments or with --file, not both")
	}

	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read notes: %w", err)
	}
	return string(data), nil
}

func printCards(out io.Writer, cards []domain.Flashcard, reveal bool) {
	if len(cards) == 0 {
		fmt.Fprintln(out, "No flashcards yet.")
		return
	}
	for i, card := range cards {
		fmt.Fprintf(out, "%d. Q: %s\n", i+1, card.Question)
		if reveal {
			fmt.Fprintf(out, "   A: %s\n", card.Answer)
		} else {
			fmt.Fprintln(out, "   A: (hidden, use --reveal)")
		}
	}
}
