// internal/words/jumble.go
//
// Jumble generation: build a scrambled letter pool from which at least
// `target` distinct vocabulary words can each be spelled.
//
// Algorithm:
//   1. Pick a random word among those the pool cannot spell yet.
//   2. Append its letters to the pool.
//   3. Re-test the remaining words; stop once `target` words are spellable.
//   4. Shuffle the pool so it does not read out the source words in order.
//
// Every draw makes at least the drawn word spellable, so generation takes
// at most `target` draws.

package words

import (
	"fmt"
	"math/rand/v2"
)

// NewRand returns a reproducible source for seed >= 0 and an
// entropy-seeded one for negative seeds.
func NewRand(seed int64) *rand.Rand {
	if seed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Jumble builds a jumble from list using NewRand(seed).
func Jumble(list []string, target int, seed int64) (string, error) {
	return JumbleWith(list, target, NewRand(seed))
}

// JumbleWith builds a jumble drawing from rng.
// It fails with ErrConfig when target is not positive or exceeds the number
// of distinct words in list.
func JumbleWith(list []string, target int, rng *rand.Rand) (string, error) {
	pending := distinct(list)
	if target <= 0 {
		return "", fmt.Errorf("%w: target count must be positive, got %d", ErrConfig, target)
	}
	if target > len(pending) {
		return "", fmt.Errorf("%w: target count %d exceeds %d distinct words", ErrConfig, target, len(pending))
	}

	pool := make(LetterBag)
	var letters []rune
	found := 0
	for found < target {
		w := pending[rng.IntN(len(pending))]
		letters = append(letters, []rune(w)...)
		pool.Add(w)

		kept := pending[:0]
		for _, p := range pending {
			if pool.Contains(p) {
				found++
			} else {
				kept = append(kept, p)
			}
		}
		pending = kept
	}

	rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return string(letters), nil
}

// distinct returns the normalized, non-empty words of list without repeats,
// in first-seen order.
func distinct(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
