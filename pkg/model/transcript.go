package model

import "time"

// Entry is one record of the conversation log. Any of Prompt, Human and AI
// may be nil, e.g. the meta analysis has no human part.
type Entry struct {
	Prompt    *string   `json:"prompt"`
	Human     *string   `json:"human"`
	AI        *string   `json:"ai"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry builds an Entry, turning empty strings into nil.
func NewEntry(prompt, human, ai string, ts time.Time) Entry {
	return Entry{
		Prompt:    optional(prompt),
		Human:     optional(human),
		AI:        optional(ai),
		Timestamp: ts,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Transcript is the flat JSON dump of a session
type Transcript struct {
	SessionID SessionID `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	Entries   []Entry   `json:"entries"`
}
