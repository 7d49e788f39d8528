package words

// LetterBag is a multiset of the characters in a string.
// Non-letter runes are counted literally, like any other character.
type LetterBag map[rune]int

// NewLetterBag counts the runes of Normalize(s).
func NewLetterBag(s string) LetterBag {
	b := make(LetterBag)
	for _, r := range Normalize(s) {
		b[r]++
	}
	return b
}

// Contains reports whether word can be spelled from the bag: every letter
// it needs must be available at least as many times as it is used.
// Letters left over in the bag are fine.
func (b LetterBag) Contains(word string) bool {
	need := NewLetterBag(word)
	for r, n := range need {
		if b[r] < n {
			return false
		}
	}
	return true
}

// Add puts every rune of Normalize(s) into the bag.
func (b LetterBag) Add(s string) {
	for _, r := range Normalize(s) {
		b[r]++
	}
}
