package adapter

import (
	"context"
	"strings"

	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// GeminiClient implements TextGenerator and ImageGenerator with Gemini
type GeminiClient struct {
	client          *genai.Client
	generativeModel string
	imageModel      string
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = model
	}
}

func WithImageModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.imageModel = model
	}
}

// NewGemini creates a client for Vertex AI (projectID and location) or for
// the Gemini API when apiKey is set.
func NewGemini(ctx context.Context, projectID, location, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	}
	if apiKey != "" {
		cfg = &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:          client,
		generativeModel: "gemini-2.5-flash",
		imageModel:      "gemini-2.5-flash-image",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) Generate(ctx context.Context, messages []model.Message) (string, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case model.RoleSystem:
			system = append(system, m.Content)
		case model.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	var config *genai.GenerateContentConfig
	if len(system) > 0 {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(strings.Join(system, "\n\n"), ""),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.generativeModel, contents, config)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("model", g.generativeModel))
	}

	text := responseText(resp)
	if text == "" {
		return "", goerr.New("no text in response", goerr.V("model", g.generativeModel))
	}
	return text, nil
}

func (g *GeminiClient) GenerateImage(ctx context.Context, req model.ImageRequest) (*model.Image, error) {
	modelName := g.imageModel
	if req.Model != "" && strings.HasPrefix(req.Model, "gemini") {
		modelName = req.Model
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := g.client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate image", goerr.V("model", modelName))
	}

	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.InlineData != nil && len(part.InlineData.Data) > 0 {
					return &model.Image{
						Data:          part.InlineData.Data,
						MIMEType:      part.InlineData.MIMEType,
						RevisedPrompt: responseText(resp),
					}, nil
				}
			}
		}
	}

	return nil, goerr.New("no image in response", goerr.V("model", modelName))
}

// responseText joins text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" && !part.Thought {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n")
}
