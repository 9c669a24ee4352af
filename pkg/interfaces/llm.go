package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/dreamlog/pkg/model"
)

// TextGenerator produces an assistant reply for a conversation
type TextGenerator interface {
	Generate(ctx context.Context, messages []model.Message) (string, error)
}

// ImageGenerator produces one image from a prompt
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req model.ImageRequest) (*model.Image, error)
}

// Fetcher downloads a remote resource
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Storage is the interface for transcript and image storage
type Storage interface {
	// Put returns a writer to save an object
	Put(ctx context.Context, key string) (io.WriteCloser, error)
	// Get loads an object
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
