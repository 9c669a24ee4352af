package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionID string

// NewSessionID generates a new unique SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Session is the metadata of one dream analysis run. The conversation itself
// is kept in the transcript object referenced by TranscriptKey.
type Session struct {
	ID            SessionID `firestore:"id"`
	StartedAt     time.Time `firestore:"started_at"`
	EndedAt       time.Time `firestore:"ended_at"`
	QuestionCount int       `firestore:"question_count"`
	MetaAnalysis  string    `firestore:"meta_analysis"`
	TranscriptKey string    `firestore:"transcript_key"`
	ImageKey      string    `firestore:"image_key,omitempty"`
}
