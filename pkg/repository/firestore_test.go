package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/dreamlog/pkg/repository"
	"github.com/m-mizutani/gt"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	repo, err := repository.New(context.Background(), projectID, databaseID)
	gt.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func testRepository(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	base := time.Now().Truncate(time.Millisecond)

	older := &model.Session{
		ID:            model.NewSessionID(),
		StartedAt:     base.Add(-time.Hour),
		EndedAt:       base.Add(-30 * time.Minute),
		QuestionCount: 3,
		MetaAnalysis:  "recurring theme of water",
		TranscriptKey: "logs/dream_log_older.json",
	}
	newer := &model.Session{
		ID:            model.NewSessionID(),
		StartedAt:     base,
		EndedAt:       base.Add(10 * time.Minute),
		QuestionCount: 5,
		TranscriptKey: "logs/dream_log_newer.json",
		ImageKey:      "downloads/dream_image_newer.png",
	}

	gt.NoError(t, repo.PutSession(ctx, older))
	gt.NoError(t, repo.PutSession(ctx, newer))

	got, err := repo.GetSession(ctx, older.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.ID, older.ID)
	gt.Equal(t, got.QuestionCount, 3)
	gt.Equal(t, got.MetaAnalysis, "recurring theme of water")
	gt.Equal(t, got.TranscriptKey, "logs/dream_log_older.json")

	_, err = repo.GetSession(ctx, model.NewSessionID())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	gt.Error(t, repo.PutSession(ctx, &model.Session{}))
}

func TestMemory(t *testing.T) {
	repo := repository.NewMemory()
	testRepository(t, repo)

	ctx := context.Background()
	sessions, err := repo.ListSessions(ctx, 0, 10)
	gt.NoError(t, err)
	gt.A(t, sessions).Length(2)
	gt.Equal(t, sessions[0].QuestionCount, 5)
	gt.Equal(t, sessions[1].QuestionCount, 3)

	sessions, err = repo.ListSessions(ctx, 1, 10)
	gt.NoError(t, err)
	gt.A(t, sessions).Length(1)
	gt.Equal(t, sessions[0].QuestionCount, 3)

	sessions, err = repo.ListSessions(ctx, 0, 1)
	gt.NoError(t, err)
	gt.A(t, sessions).Length(1)

	sessions, err = repo.ListSessions(ctx, 5, 1)
	gt.NoError(t, err)
	gt.A(t, sessions).Length(0)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	s := &model.Session{ID: model.NewSessionID(), QuestionCount: 1}
	gt.NoError(t, repo.PutSession(ctx, s))
	s.QuestionCount = 99

	got, err := repo.GetSession(ctx, s.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.QuestionCount, 1)
}

func TestFirestore(t *testing.T) {
	repo := setupFirestore(t)
	testRepository(t, repo)

	sessions, err := repo.ListSessions(context.Background(), 0, 2)
	gt.NoError(t, err)
	gt.Number(t, len(sessions)).GreaterOrEqual(1)
}
