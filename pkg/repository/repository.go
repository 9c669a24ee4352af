package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/dreamlog/pkg/interfaces"
	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrNotFound = goerr.New("not found")
)

// Memory keeps sessions in process memory. It is used when no Firestore
// project is configured.
type Memory struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*model.Session
}

var _ interfaces.Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[model.SessionID]*model.Session),
	}
}

func (m *Memory) PutSession(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return goerr.New("session ID is required")
	}

	copied := *session
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = &copied
	return nil
}

func (m *Memory) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("session_id", id))
	}
	copied := *session
	return &copied, nil
}

func (m *Memory) ListSessions(ctx context.Context, offset, limit int) ([]*model.Session, error) {
	m.mu.RLock()
	all := make([]*model.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		copied := *s
		all = append(all, &copied)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].StartedAt.After(all[j].StartedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*model.Session{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
