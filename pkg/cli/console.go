package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
)

// lineReader reads one line of user input. It returns io.EOF or
// readline.ErrInterrupt when the user ends the input.
type lineReader interface {
	Readline() (string, error)
}

func newLineReader(w io.Writer) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          w,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize readline")
	}
	return rl, nil
}

// readInput returns the trimmed line and false when the user wants to stop
func readInput(r lineReader) (string, bool) {
	line, err := r.Readline()
	if err != nil {
		// io.EOF, readline.ErrInterrupt and broken input all end the session
		return "", false
	}

	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "exit", "quit":
		return "", false
	}
	return line, true
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// startSpinner shows a spinner on stderr until the returned func is called
func startSpinner(msg string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
