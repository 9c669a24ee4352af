package dream

import (
	"context"
	"encoding/json"
	"path"

	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/dreamlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	transcriptDir   = "logs"
	timestampFormat = "20060102_150405"
	shortIDLen      = 8
)

// shortID keeps transcripts of sessions saved within the same second apart
func (s *Session) shortID() string {
	id := string(s.id)
	if len(id) > shortIDLen {
		id = id[:shortIDLen]
	}
	return id
}

// Save writes the transcript as JSON to storage and the session metadata to
// the repository when one is configured.
func (s *Session) Save(ctx context.Context) (*model.Session, error) {
	endedAt := s.now()
	key := path.Join(transcriptDir, "dream_log_"+endedAt.Format(timestampFormat)+"_"+s.shortID()+".json")

	transcript := model.Transcript{
		SessionID: s.id,
		StartedAt: s.startedAt,
		Entries:   s.entries,
	}
	if transcript.Entries == nil {
		transcript.Entries = []model.Entry{}
	}

	data, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal transcript")
	}

	writer, err := s.storage.Put(ctx, key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage writer", goerr.V("key", key))
	}
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return nil, goerr.Wrap(err, "failed to write transcript", goerr.V("key", key))
	}
	if err := writer.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close storage writer", goerr.V("key", key))
	}

	session := &model.Session{
		ID:            s.id,
		StartedAt:     s.startedAt,
		EndedAt:       endedAt,
		QuestionCount: s.questionCount,
		MetaAnalysis:  s.metaAnalysis,
		TranscriptKey: key,
		ImageKey:      s.imageKey,
	}

	if s.repo != nil {
		if err := s.repo.PutSession(ctx, session); err != nil {
			return nil, goerr.Wrap(err, "failed to put session", goerr.V("session_id", s.id))
		}
	}

	logging.From(ctx).Info("transcript saved", "key", key, "entries", len(s.entries))
	return session, nil
}
