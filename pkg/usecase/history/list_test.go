package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/dreamlog/pkg/repository"
	"github.com/m-mizutani/dreamlog/pkg/usecase/history"
	"github.com/m-mizutani/gt"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 25 {
		gt.NoError(t, repo.PutSession(ctx, &model.Session{
			ID:            model.NewSessionID(),
			StartedAt:     base.Add(time.Duration(i) * time.Hour),
			QuestionCount: i,
		}))
	}

	sessions, err := history.List(ctx, repo, 0, 0)
	gt.NoError(t, err)
	gt.A(t, sessions).Length(history.DefaultLimit)
	gt.Equal(t, sessions[0].QuestionCount, 24)

	sessions, err = history.List(ctx, repo, 20, 10)
	gt.NoError(t, err)
	gt.A(t, sessions).Length(5)

	_, err = history.List(ctx, repo, -1, 10)
	gt.Error(t, err)
}
