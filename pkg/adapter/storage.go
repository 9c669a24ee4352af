package adapter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// storageClient implements Storage interface using Cloud Storage
type storageClient struct {
	bucketName string
	prefix     string
	client     *storage.Client
}

// NewStorage creates a new Cloud Storage client. Object keys are placed
// under prefix when it is not empty.
func NewStorage(ctx context.Context, bucketName, prefix string) (interfaces.Storage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageClient{
		bucketName: bucketName,
		prefix:     strings.Trim(prefix, "/"),
		client:     client,
	}, nil
}

func (s *storageClient) object(key string) *storage.ObjectHandle {
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return s.client.Bucket(s.bucketName).Object(key)
}

func (s *storageClient) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	writer := s.object(key).NewWriter(ctx)
	writer.ContentType = contentType(key)
	return writer, nil
}

func (s *storageClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.object(key).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read from storage", goerr.V("bucket", s.bucketName), goerr.V("key", key))
	}

	return reader, nil
}

// localStorage implements Storage interface on the local filesystem
type localStorage struct {
	root string
}

// NewLocalStorage stores objects as files under root
func NewLocalStorage(root string) interfaces.Storage {
	if root == "" {
		root = "."
	}
	return &localStorage{root: root}
}

func (s *localStorage) path(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", goerr.New("invalid storage key", goerr.V("key", key))
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s *localStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create directory", goerr.V("path", path))
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file", goerr.V("path", path))
	}
	return f, nil
}

func (s *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open file", goerr.V("path", path))
	}
	return f, nil
}

func contentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
