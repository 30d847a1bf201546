package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/notecards/internal/client"
	"github.com/phrazzld/notecards/internal/config"
	"github.com/phrazzld/notecards/internal/platform/logger"
	"github.com/spf13/cobra"
)

// cli holds state shared by all subcommands.
type cli struct {
	out    io.Writer
	errOut io.Writer

	apiURL  string
	verbose bool
	timeout time.Duration

	logger *slog.Logger
	client *client.Client
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "notecards",
		Short: "Turn study notes into flashcards",
		Long: `notecards sends your notes to the notecards backend, which generates
question/answer flashcards with an LLM and stores them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api", "", "backend base URL (overrides api_base_url)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "per-request timeout (overrides timeout_seconds)")

	root.AddCommand(
		newGenerateCmd(c),
		newListCmd(c),
		newPayCmd(c),
	)
	return root
}

// setup loads client configuration, applies flag overrides and builds the API client.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if c.verbose {
		level = "debug"
	}
	c.logger = logger.Setup(logger.Config{Level: level, Output: c.errOut})

	if c.apiURL == "" {
		c.apiURL = cfg.APIBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	c.client, err = client.New(c.apiURL, client.WithTimeout(c.timeout), client.WithLogger(c.logger))
	if err != nil {
		return fmt.Errorf("invalid --api value: %w", err)
	}

	c.logger.Debug("client configured", "api", c.apiURL, "timeout", c.timeout)
	return nil
}
