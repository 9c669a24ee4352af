package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionSessions = "sessions"
)

// Firestore implements Repository interface using Firestore
type Firestore struct {
	client *firestore.Client
}

var _ interfaces.Repository = (*Firestore)(nil)

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	return &Firestore{client: client}, nil
}

func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) PutSession(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return goerr.New("session ID is required")
	}

	if _, err := r.client.Collection(collectionSessions).Doc(string(session.ID)).Set(ctx, session); err != nil {
		return goerr.Wrap(err, "failed to put session", goerr.V("session_id", session.ID))
	}
	return nil
}

func (r *Firestore) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	doc, err := r.client.Collection(collectionSessions).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("session_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get session", goerr.V("session_id", id))
	}

	var session model.Session
	if err := doc.DataTo(&session); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session", goerr.V("session_id", id))
	}
	return &session, nil
}

func (r *Firestore) ListSessions(ctx context.Context, offset, limit int) ([]*model.Session, error) {
	q := r.client.Collection(collectionSessions).OrderBy("started_at", firestore.Desc)
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var sessions []*model.Session
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate sessions")
		}

		var session model.Session
		if err := doc.DataTo(&session); err != nil {
			return nil, goerr.Wrap(err, "failed to decode session", goerr.V("doc_id", doc.Ref.ID))
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}
