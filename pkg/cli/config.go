package cli

import (
	"context"
	"os"
	"time"

	"github.com/m-mizutani/dreamlog/pkg/adapter"
	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/dreamlog/pkg/repository"
	"github.com/m-mizutani/dreamlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	providerOpenAI = "openai"
	providerGemini = "gemini"

	fetchTimeout = 60 * time.Second
)

// config holds configuration values
type config struct {
	logLevel string

	// Storage
	outputDir string
	bucket    string

	// Repository
	project  string
	database string

	// LLM
	provider       string
	openaiAPIKey   string
	openaiBaseURL  string
	openaiModel    string
	geminiAPIKey   string
	geminiProject  string
	geminiLocation string
}

// llmClient is implemented by every provider adapter
type llmClient interface {
	interfaces.TextGenerator
	interfaces.ImageGenerator
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("DREAMLOG_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "Local directory for transcripts and images",
			Value:       ".",
			Sources:     cli.EnvVars("DREAMLOG_OUTPUT_DIR"),
			Destination: &cfg.outputDir,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for transcripts and images (local directory is used if empty)",
			Sources:     cli.EnvVars("DREAMLOG_BUCKET"),
			Destination: &cfg.bucket,
		},
	}
}

// repositoryFlags returns flags for session metadata persistence
func repositoryFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID for Firestore; sessions are kept only in memory and 'history' cannot be used if empty",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider",
			Usage:       "LLM provider (openai, gemini)",
			Value:       providerOpenAI,
			Sources:     cli.EnvVars("DREAMLOG_PROVIDER"),
			Destination: &cfg.provider,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &cfg.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-base-url",
			Usage:       "Base URL of an OpenAI compatible API",
			Sources:     cli.EnvVars("OPENAI_BASE_URL"),
			Destination: &cfg.openaiBaseURL,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI chat model",
			Value:       "gpt-4o-mini",
			Sources:     cli.EnvVars("OPENAI_MODEL"),
			Destination: &cfg.openaiModel,
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key (Vertex AI is used if empty)",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &cfg.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
	}
}

// withLogger configures the default logger and attaches it to ctx
func (cfg *config) withLogger(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// newLLM creates the adapter of the configured provider
func (cfg *config) newLLM(ctx context.Context) (llmClient, error) {
	switch cfg.provider {
	case providerOpenAI:
		if cfg.openaiAPIKey == "" {
			return nil, goerr.New("openai-api-key is required")
		}
		return adapter.NewOpenAI(cfg.openaiAPIKey,
			adapter.WithOpenAIBaseURL(cfg.openaiBaseURL),
			adapter.WithChatModel(cfg.openaiModel),
		), nil

	case providerGemini:
		if cfg.geminiAPIKey == "" {
			if cfg.geminiProject == "" {
				return nil, goerr.New("gemini-api-key or gemini-project is required")
			}
			if cfg.geminiLocation == "" {
				return nil, goerr.New("gemini-location is required")
			}
		}
		client, err := adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation, cfg.geminiAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create gemini client")
		}
		return client, nil

	default:
		return nil, goerr.New("unsupported provider", goerr.V("provider", cfg.provider))
	}
}

// newStorage creates Cloud Storage when a bucket is set, local storage otherwise
func (cfg *config) newStorage(ctx context.Context) (interfaces.Storage, error) {
	if cfg.bucket == "" {
		return adapter.NewLocalStorage(cfg.outputDir), nil
	}

	storage, err := adapter.NewStorage(ctx, cfg.bucket, "")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return storage, nil
}

// newRepository creates Firestore repository when a project is set
func (cfg *config) newRepository(ctx context.Context) (interfaces.Repository, error) {
	if cfg.project == "" {
		return repository.NewMemory(), nil
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

func (cfg *config) newFetcher() interfaces.Fetcher {
	return adapter.NewHTTPFetcher(fetchTimeout)
}
