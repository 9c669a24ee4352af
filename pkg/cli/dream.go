package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/dreamlog/pkg/question"
	"github.com/m-mizutani/dreamlog/pkg/usecase/dream"
	"github.com/m-mizutani/dreamlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func dreamCommand() *cli.Command {
	var (
		cfg           config
		questionsFile string
		illustrate    bool
		noPrompt      bool
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "rounds",
			Aliases: []string{"r"},
			Usage:   "Number of follow-up questions (0: until you type exit)",
			Value:   5,
		},
		&cli.StringFlag{
			Name:        "questions",
			Aliases:     []string{"q"},
			Usage:       "YAML file with a 'questions' list to use instead of the built-in bank",
			Sources:     cli.EnvVars("DREAMLOG_QUESTIONS"),
			Destination: &questionsFile,
		},
		&cli.BoolFlag{
			Name:        "illustrate",
			Usage:       "Generate an image from the conversation without asking",
			Destination: &illustrate,
		},
		&cli.BoolFlag{
			Name:        "no-illustrate-prompt",
			Usage:       "Do not ask whether to generate an image",
			Destination: &noPrompt,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, repositoryFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "dream",
		Usage: "Interactive dream analysis",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.withLogger(ctx)

			var bank []string
			if questionsFile != "" {
				loaded, err := question.LoadFile(questionsFile)
				if err != nil {
					return err
				}
				bank = loaded
			}

			llm, err := cfg.newLLM(ctx)
			if err != nil {
				return err
			}
			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			session, err := dream.New(dream.NewInput{
				TextGenerator:  llm,
				ImageGenerator: llm,
				Fetcher:        cfg.newFetcher(),
				Storage:        storage,
				Repo:           repo,
				Bank:           bank,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create dream session")
			}

			rl, err := newLineReader(c.Root().Writer)
			if err != nil {
				return err
			}
			defer rl.Close()

			loop := &dreamLoop{
				w:             c.Root().Writer,
				in:            rl,
				session:       session,
				rounds:        int(c.Int("rounds")),
				illustrate:    illustrate,
				askIllustrate: !noPrompt,
				wait:          startSpinner,
			}
			return loop.run(ctx)
		},
	}
}

// dreamLoop drives one interactive session on a terminal
type dreamLoop struct {
	w             io.Writer
	in            lineReader
	session       *dream.Session
	rounds        int
	illustrate    bool
	askIllustrate bool
	wait          func(msg string) func()
}

func (x *dreamLoop) waiting(msg string) func() {
	if x.wait == nil {
		return func() {}
	}
	return x.wait(msg)
}

func (x *dreamLoop) run(ctx context.Context) error {
	logger := logging.From(ctx)

	fmt.Fprintf(x.w, "Dream analysis session started. Type 'exit' to finish.\n\n")
	fmt.Fprintf(x.w, "%s\n", dream.OpeningQuestion)

	description, ok := readInput(x.in)
	if !ok || description == "" {
		fmt.Fprintf(x.w, "No dream was described. Good night.\n")
		return nil
	}

	stop := x.waiting("analyzing...")
	resp, err := x.session.Open(ctx, description)
	stop()
	if err != nil {
		logger.Warn("failed to analyze dream description", "error", err)
	}
	fmt.Fprintf(x.w, "\n%s\n", resp)

	for i := 0; x.rounds <= 0 || i < x.rounds; i++ {
		q, err := x.session.NextQuestion()
		if err != nil {
			return err
		}
		fmt.Fprintf(x.w, "\n%s\n", q)

		answer, ok := x.readAnswer()
		if !ok {
			break
		}

		stop := x.waiting("analyzing...")
		resp, err := x.session.Answer(ctx, q, answer)
		stop()
		if err != nil {
			logger.Warn("failed to analyze answer", "error", err)
		}
		fmt.Fprintf(x.w, "\n%s\n", resp)
	}

	stop = x.waiting("writing meta-analysis...")
	meta, err := x.session.MetaAnalysis(ctx)
	stop()
	if err != nil {
		logger.Warn("failed to generate meta analysis", "error", err)
		fmt.Fprintf(x.w, "\nAn error occurred during meta-analysis: %v\n", err)
	} else {
		fmt.Fprintf(x.w, "\n=== Meta-analysis ===\n%s\n", meta)
	}

	if x.wantsIllustration() {
		stop := x.waiting("illustrating your dream...")
		out, err := x.session.Illustrate(ctx)
		stop()
		if err != nil {
			logger.Warn("failed to illustrate dream", "error", err)
			fmt.Fprintf(x.w, "An error occurred while generating the image: %v\n", err)
		} else {
			fmt.Fprintf(x.w, "Dream image saved to %s\n", out.Key)
		}
	}

	saved, err := x.session.Save(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to save dream session")
	}
	fmt.Fprintf(x.w, "Conversation log saved to %s\n", saved.TranscriptKey)
	return nil
}

// readAnswer re-prompts on blank input so that a round is only spent on a
// real answer
func (x *dreamLoop) readAnswer() (string, bool) {
	for {
		answer, ok := readInput(x.in)
		if !ok || answer != "" {
			return answer, ok
		}
		fmt.Fprintf(x.w, "Please type an answer, or 'exit' to finish.\n")
	}
}

func (x *dreamLoop) wantsIllustration() bool {
	if x.illustrate {
		return true
	}
	if !x.askIllustrate {
		return false
	}

	fmt.Fprintf(x.w, "\nGenerate an image from this dream? [y/N]\n")
	answer, ok := readInput(x.in)
	return ok && isYes(answer)
}
