package image

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/dreamlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultDir    = "downloads"
	DefaultPrefix = "image"

	timestampFormat = "20060102_150405"
)

var (
	ErrEmptyPrompt = goerr.New("prompt is empty")
)

// Input contains parameters for generating one image
type Input struct {
	Generator interfaces.ImageGenerator
	Fetcher   interfaces.Fetcher
	Storage   interfaces.Storage

	Prompt string
	Model  string
	Size   string

	// Dir and Prefix build the key as <Dir>/<Prefix>_<timestamp>.<ext>
	Dir    string
	Prefix string
	Now    func() time.Time
}

// Output describes the saved image
type Output struct {
	Key           string
	Size          int
	URL           string
	RevisedPrompt string
}

// Generate creates an image, downloads it when the provider returns a URL,
// and writes it to storage under a timestamped key.
func Generate(ctx context.Context, input Input) (*Output, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if input.Generator == nil {
		return nil, goerr.New("image generator is not configured")
	}

	logger := logging.From(ctx)
	logger.Debug("generating image", "prompt", prompt, "model", input.Model, "size", input.Size)

	img, err := input.Generator.GenerateImage(ctx, model.ImageRequest{
		Prompt: prompt,
		Model:  input.Model,
		Size:   input.Size,
		Count:  1,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate image")
	}

	data := img.Data
	if len(data) == 0 {
		if img.URL == "" {
			return nil, goerr.New("image has neither data nor URL")
		}
		if input.Fetcher == nil {
			return nil, goerr.New("fetcher is not configured", goerr.V("url", img.URL))
		}

		logger.Debug("downloading image", "url", img.URL)
		data, err = input.Fetcher.Fetch(ctx, img.URL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to download image")
		}
	}

	key := buildKey(input, img.Extension())
	if err := write(ctx, input.Storage, key, data); err != nil {
		return nil, err
	}
	logger.Info("image saved", "key", key, "bytes", len(data))

	return &Output{
		Key:           key,
		Size:          len(data),
		URL:           img.URL,
		RevisedPrompt: img.RevisedPrompt,
	}, nil
}

func buildKey(input Input, ext string) string {
	now := time.Now
	if input.Now != nil {
		now = input.Now
	}
	dir := input.Dir
	if dir == "" {
		dir = DefaultDir
	}
	prefix := input.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return path.Join(dir, prefix+"_"+now().Format(timestampFormat)+"."+ext)
}

func write(ctx context.Context, storage interfaces.Storage, key string, data []byte) error {
	if storage == nil {
		return goerr.New("storage is not configured")
	}

	w, err := storage.Put(ctx, key)
	if err != nil {
		return goerr.Wrap(err, "failed to create storage writer", goerr.V("key", key))
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write image", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage writer", goerr.V("key", key))
	}
	return nil
}
