package cli

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

var (
	// errReported marks a failure already shown to the user by the command
	errReported = goerr.New("error already reported")
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "dreamlog",
		Usage: "Dream analysis and image generation with hosted LLMs",
		Commands: []*cli.Command{
			imageCommand(),
			dreamCommand(),
			historyCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		if errors.Is(err, errReported) {
			return &Error{Code: 1}
		}
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
