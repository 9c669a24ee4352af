package history

import (
	"context"

	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

const DefaultLimit = 20

// List returns recorded dream sessions, newest first
func List(
	ctx context.Context,
	repo interfaces.Repository,
	offset, limit int,
) ([]*model.Session, error) {
	if offset < 0 {
		return nil, goerr.New("offset must not be negative", goerr.V("offset", offset))
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sessions, err := repo.ListSessions(ctx, offset, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sessions")
	}
	return sessions, nil
}
