package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/dreamlog/pkg/usecase/image"
	"github.com/m-mizutani/dreamlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func imageCommand() *cli.Command {
	var (
		cfg    config
		prompt string
		mdl    string
		size   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "prompt",
			Usage:       "Prompt of the image",
			Value:       model.DefaultImagePrompt,
			Destination: &prompt,
		},
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "Image model",
			Value:       model.DefaultImageModel,
			Sources:     cli.EnvVars("DREAMLOG_IMAGE_MODEL"),
			Destination: &mdl,
		},
		&cli.StringFlag{
			Name:        "size",
			Usage:       "Image size",
			Value:       model.DefaultImageSize,
			Destination: &size,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "image",
		Usage: "Generate an image from a prompt and download it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.withLogger(ctx)

			llm, err := cfg.newLLM(ctx)
			if err != nil {
				return err
			}

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner("generating image...")
			out, err := image.Generate(ctx, image.Input{
				Generator: llm,
				Fetcher:   cfg.newFetcher(),
				Storage:   storage,
				Prompt:    prompt,
				Model:     mdl,
				Size:      size,
			})
			stop()

			if err != nil {
				logging.From(ctx).Debug("image generation failed", "error", err)
				fmt.Fprintf(c.Root().Writer, "An error occurred: %v\n", err)
				return goerr.Wrap(errReported, "image generation failed")
			}

			fmt.Fprintf(c.Root().Writer, "Image has been saved successfully! (%s, %d bytes)\n", out.Key, out.Size)
			if out.RevisedPrompt != "" {
				fmt.Fprintf(c.Root().Writer, "Revised prompt: %s\n", out.RevisedPrompt)
			}
			return nil
		},
	}
}
