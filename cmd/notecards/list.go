package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored flashcards, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := c.client.ListFlashcards(cmd.Context())
			if err != nil {
				c.logger.Debug("list failed", "error", err)
				return errors.New("failed to load flashcards")
			}
			printCards(c.out, cards, reveal)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "show answers")
	return cmd
}
