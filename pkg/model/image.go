package model

import "strings"

const (
	DefaultImagePrompt = "A cute baby sea otter"
	DefaultImageModel  = "dall-e-3"
	DefaultImageSize   = "1024x1024"
)

// ImageRequest is a provider independent image generation request
type ImageRequest struct {
	Prompt string
	Model  string
	Size   string
	Count  int
}

// Image is a generated image. Providers set either Data or URL.
type Image struct {
	Data          []byte
	MIMEType      string
	URL           string
	RevisedPrompt string
}

// Extension returns a file extension for the image MIME type, png by default.
func (x *Image) Extension() string {
	switch strings.ToLower(x.MIMEType) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
