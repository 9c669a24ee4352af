package adapter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/m-mizutani/dreamlog/pkg/adapter"
	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/gt"
)

func newFakeOpenAI(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/chat/completions":
			var body struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gt.Equal(t, body.Model, "test-model")
			gt.A(t, body.Messages).Length(2)
			gt.Equal(t, body.Messages[0].Role, "system")
			gt.Equal(t, body.Messages[1].Role, "user")

			_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"water means emotion"},"finish_reason":"stop"}]}`))

		case "/v1/images/generations":
			var body struct {
				Prompt string `json:"prompt"`
				Model  string `json:"model"`
				N      int    `json:"n"`
				Size   string `json:"size"`
			}
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gt.Equal(t, body.Prompt, model.DefaultImagePrompt)
			gt.Equal(t, body.Model, "dall-e-3")
			gt.Equal(t, body.N, 1)
			gt.Equal(t, body.Size, "1024x1024")

			_, _ = w.Write([]byte(`{"created":1,"data":[{"url":"https://example.com/otter.png","revised_prompt":"an otter"}]}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestOpenAIGenerate(t *testing.T) {
	srv := newFakeOpenAI(t)
	defer srv.Close()

	client := adapter.NewOpenAI("dummy", adapter.WithOpenAIBaseURL(srv.URL+"/v1"), adapter.WithChatModel("test-model"))
	text, err := client.Generate(context.Background(), []model.Message{
		model.SystemMessage("you analyze dreams"),
		model.UserMessage("I dreamed of the sea"),
	})
	gt.NoError(t, err)
	gt.Equal(t, text, "water means emotion")
}

func TestOpenAIGenerateImage(t *testing.T) {
	srv := newFakeOpenAI(t)
	defer srv.Close()

	client := adapter.NewOpenAI("dummy", adapter.WithOpenAIBaseURL(srv.URL+"/v1"))
	img, err := client.GenerateImage(context.Background(), model.ImageRequest{
		Prompt: model.DefaultImagePrompt,
	})
	gt.NoError(t, err)
	gt.Equal(t, img.URL, "https://example.com/otter.png")
	gt.Equal(t, img.RevisedPrompt, "an otter")
	gt.A(t, img.Data).Length(0)
}

func TestOpenAIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	client := adapter.NewOpenAI("dummy", adapter.WithOpenAIBaseURL(srv.URL+"/v1"))
	_, err := client.GenerateImage(context.Background(), model.ImageRequest{Prompt: "x"})
	gt.Error(t, err)
}

func TestOpenAILive(t *testing.T) {
	apiKey := os.Getenv("TEST_OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("TEST_OPENAI_API_KEY is not set")
	}

	client := adapter.NewOpenAI(apiKey)
	text, err := client.Generate(context.Background(), []model.Message{
		model.UserMessage("Reply with the single word: ok"),
	})
	gt.NoError(t, err)
	gt.V(t, text).NotEqual("")
}
