// internal/game/types.go
//
// Core type definitions for the jumble game.
// Defines:
//   - Session: per-player record (jumble, target, discovered words).
//   - Outcome: classification of a single attempt.
//   - State:   Playing until enough words are found, then Completed.

package game

import (
	"errors"
	"fmt"
)

// ErrSessionState is returned when an attempt is checked against a session
// that was never started.
var ErrSessionState = errors.New("session not started")

// Session is the per-player record kept in the session store.
// Its JSON form is the record shared with the transport layer.
type Session struct {
	Jumble      string   `json:"jumble"`      // Scrambled letters for this round.
	TargetCount int      `json:"targetCount"` // Words needed to win.
	Matches     []string `json:"matches"`     // Words found so far, in discovery order.
}

// State is the coarse progress of a session.
type State string

const (
	StatePlaying   State = "playing"
	StateCompleted State = "completed"
)

// Outcome classifies one attempt.
type Outcome string

const (
	OutcomeAlreadyFound Outcome = "already_found"
	OutcomeNotInVocab   Outcome = "not_in_vocabulary"
	OutcomeNotInJumble  Outcome = "not_formable"
	OutcomeNewMatch     Outcome = "new_match"
)

// Message renders the player-facing text for an outcome.
// It panics on an unknown outcome: every classification must be one of the
// four above.
func (o Outcome) Message(word, jumble string) string {
	switch o {
	case OutcomeNewMatch:
		return fmt.Sprintf("You found %s", word)
	case OutcomeAlreadyFound:
		return fmt.Sprintf("You already found %s", word)
	case OutcomeNotInVocab:
		return fmt.Sprintf("%s isn't in the list of words", word)
	case OutcomeNotInJumble:
		return fmt.Sprintf("\"%s\" can't be made from the letters %s", word, jumble)
	}
	panic(fmt.Sprintf("game: unknown outcome %q", string(o)))
}

// Success reports whether the attempt added a word.
func (o Outcome) Success() bool { return o == OutcomeNewMatch }
