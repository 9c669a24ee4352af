package question

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

var defaultBank = []string{
	"How did you feel when you woke up from this dream?",
	"Which person in the dream stood out the most, and who do they remind you of?",
	"Was there a place in the dream that felt familiar? Where was it?",
	"What was the strongest emotion you felt during the dream?",
	"Did anything in the dream feel like it was chasing you or blocking your way?",
	"Were you an observer or an active participant in the dream?",
	"Is there something in your waking life that resembles a scene from the dream?",
	"Which colors, sounds or objects do you remember most clearly?",
	"Did the dream change suddenly at any point? What happened just before?",
	"If you could change the ending of the dream, what would you change?",
	"Have you had a similar dream before?",
	"What do you think the dream is trying to tell you?",
}

// DefaultBank returns the built-in dream questions
func DefaultBank() []string {
	return append([]string(nil), defaultBank...)
}

type bankFile struct {
	Questions []string `yaml:"questions"`
}

// LoadFile reads a question bank from a YAML file with a top level
// "questions" list. Blank entries are dropped.
func LoadFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read question file", goerr.V("path", path))
	}

	var f bankFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse question file", goerr.V("path", path))
	}

	bank := make([]string, 0, len(f.Questions))
	for _, q := range f.Questions {
		if q = strings.TrimSpace(q); q != "" {
			bank = append(bank, q)
		}
	}
	if len(bank) == 0 {
		return nil, goerr.Wrap(ErrInvalidState, "no question in file", goerr.V("path", path))
	}

	return bank, nil
}
