package cli

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

// Option overrides the process streams, mainly for tests
type Option func(*cli.Command)

// WithWriter sets where command output goes
func WithWriter(w io.Writer) Option {
	return func(cmd *cli.Command) {
		cmd.Writer = w
	}
}

// WithErrWriter sets where prompts, animation and logs go
func WithErrWriter(w io.Writer) Option {
	return func(cmd *cli.Command) {
		cmd.ErrWriter = w
	}
}

// WithReader sets the input stream prompts read from
func WithReader(r io.Reader) Option {
	return func(cmd *cli.Command) {
		cmd.Reader = r
	}
}

func Run(ctx context.Context, argv []string, opts ...Option) *Error {
	cmd := &cli.Command{
		Name:  "omnifind",
		Usage: "Find lost items by plum blossom, six lines and small liu ren divination",
		Commands: []*cli.Command{
			castCommand(),
			historyCommand(),
			showCommand(),
			exportCommand(),
			serveCommand(),
		},
		Reader:    os.Stdin,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}

	for _, opt := range opts {
		opt(cmd)
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
