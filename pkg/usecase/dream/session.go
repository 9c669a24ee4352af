package dream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/dreamlog/pkg/question"
	"github.com/m-mizutani/dreamlog/pkg/usecase/image"
	"github.com/m-mizutani/dreamlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	OpeningQuestion  = "Please describe your dream in as much detail as you remember."
	FallbackResponse = "Sorry, I could not analyze that answer right now. Let's continue."

	imagePrefix = "dream_image"
)

// Session manages one interactive dream analysis run. It owns its question
// selector and conversation log and is not safe for concurrent use.
type Session struct {
	textGen  interfaces.TextGenerator
	imageGen interfaces.ImageGenerator
	fetcher  interfaces.Fetcher
	storage  interfaces.Storage
	repo     interfaces.Repository

	selector   *question.Selector[string]
	now        func() time.Time
	imageModel string
	imageSize  string

	id            model.SessionID
	startedAt     time.Time
	messages      []model.Message
	entries       []model.Entry
	questionCount int
	metaAnalysis  string
	imageKey      string
}

// NewInput contains parameters for creating a new dream session
type NewInput struct {
	TextGenerator  interfaces.TextGenerator
	ImageGenerator interfaces.ImageGenerator // Optional: required only by Illustrate
	Fetcher        interfaces.Fetcher
	Storage        interfaces.Storage
	Repo           interfaces.Repository

	// Bank is the question bank. question.DefaultBank() is used when empty.
	Bank       []string
	ImageModel string
	ImageSize  string
	Now        func() time.Time
}

func New(input NewInput) (*Session, error) {
	if input.TextGenerator == nil {
		return nil, goerr.New("text generator is required")
	}
	if input.Storage == nil {
		return nil, goerr.New("storage is required")
	}

	bank := input.Bank
	if len(bank) == 0 {
		bank = question.DefaultBank()
	}
	selector, err := question.New(bank)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create question selector")
	}

	now := input.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		textGen:  input.TextGenerator,
		imageGen: input.ImageGenerator,
		fetcher:  input.Fetcher,
		storage:  input.Storage,
		repo:     input.Repo,

		selector:   selector,
		now:        now,
		imageModel: input.ImageModel,
		imageSize:  input.ImageSize,

		id:        model.NewSessionID(),
		startedAt: now(),
		messages:  []model.Message{model.SystemMessage(systemPrompt)},
	}, nil
}

func (s *Session) ID() model.SessionID { return s.id }

// Entries returns a copy of the conversation log
func (s *Session) Entries() []model.Entry {
	return append([]model.Entry(nil), s.entries...)
}

func (s *Session) QuestionCount() int { return s.questionCount }

func (s *Session) MetaAnalysisText() string { return s.metaAnalysis }

func (s *Session) record(prompt, human, ai string) {
	s.entries = append(s.entries, model.NewEntry(prompt, human, ai, s.now()))
}

// Open sends the dream description as the first turn of the conversation.
func (s *Session) Open(ctx context.Context, description string) (string, error) {
	return s.exchange(ctx, OpeningQuestion, description,
		"Here is my dream:\n"+description)
}

// NextQuestion returns the next follow-up question
func (s *Session) NextQuestion() (string, error) {
	q, err := s.selector.Next()
	if err != nil {
		return "", goerr.Wrap(err, "failed to pick next question")
	}
	return q, nil
}

// Answer sends the dreamer's answer to a question and returns the analysis.
// When the generator fails, FallbackResponse is returned together with the
// error and recorded in the log, so that the caller can choose to continue.
func (s *Session) Answer(ctx context.Context, q, answer string) (string, error) {
	s.questionCount++
	return s.exchange(ctx, q, answer,
		fmt.Sprintf("Question: %s\nAnswer: %s", q, answer))
}

func (s *Session) exchange(ctx context.Context, prompt, human, content string) (string, error) {
	s.messages = append(s.messages, model.UserMessage(content))

	resp, err := s.textGen.Generate(ctx, s.messages)
	if err != nil {
		// keep the user turn so later answers are analyzed with it
		s.messages = append(s.messages, model.AssistantMessage(FallbackResponse))
		s.record(prompt, human, FallbackResponse)
		return FallbackResponse, goerr.Wrap(err, "failed to analyze answer", goerr.V("prompt", prompt))
	}

	resp = strings.TrimSpace(resp)
	s.messages = append(s.messages, model.AssistantMessage(resp))
	s.record(prompt, human, resp)
	return resp, nil
}

// MetaAnalysis asks for an analysis of the whole conversation so far
func (s *Session) MetaAnalysis(ctx context.Context) (string, error) {
	if len(s.entries) == 0 {
		return "", goerr.New("conversation is empty")
	}

	prompt, err := render(metaPromptTmpl, promptInput{Entries: s.entries})
	if err != nil {
		return "", err
	}

	resp, err := s.textGen.Generate(ctx, []model.Message{model.UserMessage(prompt)})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate meta analysis")
	}

	s.metaAnalysis = strings.TrimSpace(resp)
	s.record("", "", s.metaAnalysis)
	return s.metaAnalysis, nil
}

// Illustrate turns the conversation into an image prompt and generates an
// image from it.
func (s *Session) Illustrate(ctx context.Context) (*image.Output, error) {
	if s.imageGen == nil {
		return nil, goerr.New("image generator is not configured")
	}
	if len(s.entries) == 0 {
		return nil, goerr.New("conversation is empty")
	}

	prompt, err := render(illustratePromptTmpl, promptInput{
		Entries:      s.entries,
		MetaAnalysis: s.metaAnalysis,
	})
	if err != nil {
		return nil, err
	}

	imagePrompt, err := s.textGen.Generate(ctx, []model.Message{model.UserMessage(prompt)})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate image prompt")
	}
	imagePrompt = strings.TrimSpace(imagePrompt)
	logging.From(ctx).Debug("image prompt", "prompt", imagePrompt)

	out, err := image.Generate(ctx, image.Input{
		Generator: s.imageGen,
		Fetcher:   s.fetcher,
		Storage:   s.storage,
		Prompt:    imagePrompt,
		Model:     s.imageModel,
		Size:      s.imageSize,
		Dir:       image.DefaultDir,
		Prefix:    imagePrefix,
		Now:       s.now,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to illustrate dream")
	}

	s.imageKey = out.Key
	s.record(imagePrompt, "", "image saved to "+out.Key)
	return out, nil
}
