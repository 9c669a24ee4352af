package interfaces

import (
	"context"

	"github.com/m-mizutani/dreamlog/pkg/model"
)

// Repository defines the interface for session metadata persistence
type Repository interface {
	// PutSession saves a session to the repository
	PutSession(ctx context.Context, session *model.Session) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)

	// ListSessions retrieves sessions, newest first
	ListSessions(ctx context.Context, offset, limit int) ([]*model.Session, error)
}
