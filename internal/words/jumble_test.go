package words

import (
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spellable(jumble string, list []string) int {
	bag := NewLetterBag(jumble)
	n := 0
	for _, w := range distinct(list) {
		if bag.Contains(w) {
			n++
		}
	}
	return n
}

func TestJumbleContainsTargetWords(t *testing.T) {
	list := []string{"cat", "dog", "cog", "moose", "zebra", "owl"}
	for target := 1; target <= len(list); target++ {
		for seed := int64(0); seed < 20; seed++ {
			j, err := Jumble(list, target, seed)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, spellable(j, list), target, "seed=%d target=%d jumble=%q", seed, target, j)
		}
	}
}

func TestJumbleIsReproducibleWithSeed(t *testing.T) {
	list := []string{"cat", "dog", "cog", "moose", "zebra", "owl"}

	a, err := Jumble(list, 3, 42)
	require.NoError(t, err)
	b, err := Jumble(list, 3, 42)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestJumbleUnseededStillValid(t *testing.T) {
	list := []string{"cat", "dog", "cog"}

	j, err := Jumble(list, 2, -1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, spellable(j, list), 2)
}

func TestJumbleShufflesPoolLetters(t *testing.T) {
	list := []string{"zebra"}

	j, err := Jumble(list, 1, 3)
	require.NoError(t, err)

	got := strings.Split(j, "")
	sort.Strings(got)
	assert.Equal(t, []string{"a", "b", "e", "r", "z"}, got)
}

func TestJumbleRejectsBadTarget(t *testing.T) {
	list := []string{"cat", "dog", "cog"}
	tests := []struct {
		name   string
		list   []string
		target int
	}{
		{name: "zero", list: list, target: 0},
		{name: "negative", list: list, target: -2},
		{name: "more than words", list: list, target: 4},
		{name: "duplicates do not count twice", list: []string{"cat", "CAT", " cat"}, target: 2},
		{name: "empty list", list: nil, target: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Jumble(tt.list, tt.target, 1)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestJumbleWithInjectedSource(t *testing.T) {
	list := []string{"aa", "aaa", "aaaa"}
	rng := rand.New(rand.NewPCG(9, 9))

	j, err := JumbleWith(list, 3, rng)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(j), 4)
	assert.Equal(t, 3, spellable(j, list))
}
