package question

import (
	"math/rand/v2"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidState = goerr.New("invalid state")
)

// Selector returns questions from a fixed bank in random order without
// repeating one until every question of the bank has been asked. Then the
// asked set is cleared and a new cycle starts.
//
// A Selector belongs to a single session and is not safe for concurrent use.
type Selector[T comparable] struct {
	bank  []T
	asked map[T]struct{}
}

// New creates a Selector over a copy of bank. An empty bank is rejected.
func New[T comparable](bank []T) (*Selector[T], error) {
	if len(bank) == 0 {
		return nil, goerr.Wrap(ErrInvalidState, "question bank is empty")
	}

	return &Selector[T]{
		bank:  append([]T(nil), bank...),
		asked: make(map[T]struct{}, len(bank)),
	}, nil
}

// Next picks a question that has not been asked in the current cycle.
func (x *Selector[T]) Next() (T, error) {
	var zero T
	if len(x.bank) == 0 {
		return zero, goerr.Wrap(ErrInvalidState, "question bank is empty")
	}
	if x.asked == nil {
		x.asked = make(map[T]struct{}, len(x.bank))
	}

	available := x.available()
	if len(available) == 0 {
		clear(x.asked)
		available = x.bank
	}

	picked := available[rand.IntN(len(available))]
	x.asked[picked] = struct{}{}
	return picked, nil
}

func (x *Selector[T]) available() []T {
	out := make([]T, 0, len(x.bank)-len(x.asked))
	for _, q := range x.bank {
		if _, ok := x.asked[q]; !ok {
			out = append(out, q)
		}
	}
	return out
}

// Len returns the size of the bank
func (x *Selector[T]) Len() int {
	return len(x.bank)
}

// Remaining returns how many questions are left in the current cycle
func (x *Selector[T]) Remaining() int {
	return len(x.available())
}

// Reset starts a new cycle
func (x *Selector[T]) Reset() {
	clear(x.asked)
}
