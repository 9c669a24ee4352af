package adapter_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/dreamlog/pkg/adapter"
	"github.com/m-mizutani/gt"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	storage := adapter.NewLocalStorage(root)

	w, err := storage.Put(ctx, "logs/dream_log_20240101_000000.json")
	gt.NoError(t, err)
	_, err = w.Write([]byte(`{"entries":[]}`))
	gt.NoError(t, err)
	gt.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(root, "logs", "dream_log_20240101_000000.json"))
	gt.NoError(t, err)

	r, err := storage.Get(ctx, "logs/dream_log_20240101_000000.json")
	gt.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	gt.NoError(t, err)
	gt.Equal(t, string(data), `{"entries":[]}`)
}

func TestLocalStorageRejectsEscape(t *testing.T) {
	ctx := context.Background()
	storage := adapter.NewLocalStorage(t.TempDir())

	_, err := storage.Put(ctx, "../outside.json")
	gt.Error(t, err)

	_, err = storage.Get(ctx, "/etc/passwd")
	gt.Error(t, err)
}

func TestLocalStorageGetMissing(t *testing.T) {
	storage := adapter.NewLocalStorage(t.TempDir())
	_, err := storage.Get(context.Background(), "downloads/none.png")
	gt.Error(t, err)
}

func TestCloudStorage(t *testing.T) {
	bucket := os.Getenv("TEST_STORAGE_BUCKET")
	if bucket == "" {
		t.Skip("TEST_STORAGE_BUCKET is not set")
	}

	ctx := context.Background()
	storage, err := adapter.NewStorage(ctx, bucket, "dreamlog-test")
	gt.NoError(t, err)

	w, err := storage.Put(ctx, "logs/test.json")
	gt.NoError(t, err)
	_, err = w.Write([]byte(`{}`))
	gt.NoError(t, err)
	gt.NoError(t, w.Close())

	r, err := storage.Get(ctx, "logs/test.json")
	gt.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	gt.NoError(t, err)
	gt.Equal(t, string(data), `{}`)
}
