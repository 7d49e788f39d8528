// internal/words/vocab.go
//
// Vocabulary management for the jumble game.
//
// Responsibilities:
//   - Parse a whitespace/newline delimited word source into a Vocab.
//   - Keep an ordered list (drives jumble generation) and a lookup set.
//   - Answer case-insensitive membership queries.
//
// Sources:
//   - LoadFile(path) for a configured vocabulary file.
//   - Default() for the list embedded in the assets package.
//
// A Vocab is never mutated after Load returns, so a single instance is
// shared by every request handler without locking.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/vocab/assets"
)

// ErrConfig marks a startup configuration problem: an unusable vocabulary
// source or a target count the vocabulary cannot satisfy.
var ErrConfig = errors.New("config error")

// Vocab is an immutable set of lowercase words that remembers load order.
type Vocab struct {
	list []string
	set  map[string]struct{}
}

// Load reads every whitespace separated token from r.
// Lines starting with '#' are comments. Duplicates keep their first position.
func Load(r io.Reader) (*Vocab, error) {
	v := &Vocab{set: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, tok := range strings.Fields(line) {
			w := Normalize(tok)
			if _, dup := v.set[w]; dup {
				continue
			}
			v.set[w] = struct{}{}
			v.list = append(v.list, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read vocabulary: %v", ErrConfig, err)
	}
	if len(v.list) == 0 {
		return nil, fmt.Errorf("%w: vocabulary is empty", ErrConfig)
	}
	return v, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open vocabulary: %v", ErrConfig, err)
	}
	defer f.Close()
	return Load(f)
}

// Default loads the vocabulary embedded in the binary.
func Default() (*Vocab, error) {
	f, err := assets.Vocab()
	if err != nil {
		return nil, fmt.Errorf("%w: embedded vocabulary: %v", ErrConfig, err)
	}
	defer f.Close()
	return Load(f)
}

// Has reports whether w (trimmed, case-folded) is in the vocabulary.
func (v *Vocab) Has(w string) bool {
	_, ok := v.set[Normalize(w)]
	return ok
}

// List returns the words in load order. The slice is a copy.
func (v *Vocab) List() []string {
	return append([]string(nil), v.list...)
}

// Len returns the number of distinct words.
func (v *Vocab) Len() int { return len(v.list) }

// Normalize trims surrounding whitespace and lowercases w.
// Both Vocab and LetterBag go through it so their views of a word agree.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
