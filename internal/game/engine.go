// internal/game/engine.go
//
// Core game engine for a single jumble session.
// Responsibilities:
//   - Start sessions: clamp the target to the vocabulary, generate a jumble.
//   - Classify attempts: already found / not a word / not in jumble / new.
//   - Track state: playing → completed once TargetCount words are found.
//
// Check never mutates its input. It returns the next session value, which
// lets the caller store it inside whatever critical section guards the
// player's record.
package game

import (
	"fmt"
	"slices"

	"github.com/robalobadob/vocab/internal/words"
)

// Lexicon answers vocabulary membership. *words.Vocab satisfies it.
type Lexicon interface {
	Has(word string) bool
}

// NewSession starts a round. The target is successAt clamped to the
// vocabulary size; seed follows words.NewRand (negative = unseeded).
func NewSession(v *words.Vocab, successAt int, seed int64) (Session, error) {
	target := min(v.Len(), successAt)
	jumble, err := words.Jumble(v.List(), target, seed)
	if err != nil {
		return Session{}, fmt.Errorf("new session: %w", err)
	}
	return Session{
		Jumble:      jumble,
		TargetCount: target,
		Matches:     []string{},
	}, nil
}

// Started reports whether the session holds a playable round.
func (s Session) Started() bool {
	return s.Jumble != "" && s.TargetCount > 0
}

// State reports playing or completed.
func (s Session) State() State {
	if len(s.Matches) >= s.TargetCount {
		return StateCompleted
	}
	return StatePlaying
}

// Found reports whether word has already been matched.
func (s Session) Found(word string) bool {
	return slices.Contains(s.Matches, words.Normalize(word))
}

// Check classifies attempt against the session and lexicon.
//
// Order of checks:
//   1. already in Matches   → OutcomeAlreadyFound
//   2. not in the lexicon   → OutcomeNotInVocab
//   3. not in the jumble    → OutcomeNotInJumble
//   4. otherwise            → OutcomeNewMatch, word appended
//
// Only OutcomeNewMatch returns a session different from s.
func Check(s Session, lex Lexicon, attempt string) (Session, Outcome, error) {
	if !s.Started() {
		return s, "", ErrSessionState
	}
	word := words.Normalize(attempt)

	switch {
	case s.Found(word):
		return s, OutcomeAlreadyFound, nil
	case !lex.Has(word):
		return s, OutcomeNotInVocab, nil
	case !words.NewLetterBag(s.Jumble).Contains(word):
		return s, OutcomeNotInJumble, nil
	}

	next := s
	next.Matches = append(slices.Clone(s.Matches), word)
	return next, OutcomeNewMatch, nil
}
