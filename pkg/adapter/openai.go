package adapter

import (
	"context"

	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements TextGenerator and ImageGenerator with the OpenAI API
type OpenAIClient struct {
	client    *openai.Client
	chatModel string
}

type OpenAIOption func(*openai.ClientConfig, *OpenAIClient)

// WithOpenAIBaseURL points the client to an OpenAI compatible endpoint
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(cfg *openai.ClientConfig, _ *OpenAIClient) {
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
	}
}

func WithChatModel(model string) OpenAIOption {
	return func(_ *openai.ClientConfig, c *OpenAIClient) {
		if model != "" {
			c.chatModel = model
		}
	}
}

func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	c := &OpenAIClient{
		chatModel: openai.GPT4oMini,
	}
	for _, opt := range opts {
		opt(&cfg, c)
	}

	c.client = openai.NewClientWithConfig(cfg)
	return c
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []model.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: toOpenAIMessages(messages),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create chat completion", goerr.V("model", c.chatModel))
	}
	if len(resp.Choices) == 0 {
		return "", goerr.New("no choice in chat completion", goerr.V("model", c.chatModel))
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GenerateImage(ctx context.Context, req model.ImageRequest) (*model.Image, error) {
	imgReq := openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          req.Model,
		Size:           req.Size,
		N:              req.Count,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}
	if imgReq.Model == "" {
		imgReq.Model = openai.CreateImageModelDallE3
	}
	if imgReq.Size == "" {
		imgReq.Size = openai.CreateImageSize1024x1024
	}
	if imgReq.N == 0 {
		imgReq.N = 1
	}

	resp, err := c.client.CreateImage(ctx, imgReq)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create image", goerr.V("model", imgReq.Model))
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, goerr.New("no image in response", goerr.V("model", imgReq.Model))
	}

	return &model.Image{
		URL:           resp.Data[0].URL,
		MIMEType:      "image/png",
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

func toOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case model.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case model.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
