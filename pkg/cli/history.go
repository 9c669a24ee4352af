package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/dreamlog/pkg/usecase/history"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var cfg config

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Max number of sessions to show",
			Value:   history.DefaultLimit,
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "Number of sessions to skip",
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, repositoryFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "List dream sessions recorded in Firestore (requires --project)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.withLogger(ctx)

			if cfg.project == "" {
				return goerr.New("--project (GOOGLE_CLOUD_PROJECT) is required: session history is stored in Firestore")
			}
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			sessions, err := history.List(ctx, repo, int(c.Int("offset")), int(c.Int("limit")))
			if err != nil {
				return goerr.Wrap(err, "failed to list sessions")
			}

			if len(sessions) == 0 {
				fmt.Fprintf(c.Root().Writer, "No dream sessions found\n")
				return nil
			}

			for _, s := range sessions {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%d questions\t%s\n",
					s.ID,
					s.StartedAt.Format("2006-01-02 15:04:05"),
					s.QuestionCount,
					s.TranscriptKey,
				)
			}

			return nil
		},
	}
}
