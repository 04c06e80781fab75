package automaton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("partial automaton", func(t *testing.T) {
		assertRuns(t, mustParse(t, exactlyAAA), map[string]bool{
			"aaa":  true,
			"aa":   false,
			"aaaa": false,
			"b":    false,
			"":     false,
		})
	})

	t.Run("epsilon moves", func(t *testing.T) {
		assertRuns(t, mustParse(t, endsWithA), map[string]bool{
			"a":    true,
			"bba":  true,
			"aba":  true,
			"":     false,
			"b":    false,
			"aabb": false,
		})
	})

	t.Run("no final states", func(t *testing.T) {
		a := mustParse(t, Fields{States: "q0", Alphabet: "a", Initial: "q0", Transitions: "q0,a=q0"})
		assertRuns(t, a, map[string]bool{"": false, "a": false, "aaa": false})
	})

	t.Run("initial state is final", func(t *testing.T) {
		a := mustParse(t, Fields{States: "q0", Alphabet: "a", Initial: "q0", Finals: "q0"})
		assertRuns(t, a, map[string]bool{"": true, "a": false})
	})

	t.Run("symbol outside alphabet", func(t *testing.T) {
		ok, err := Run(mustParse(t, exactlyAAA), "aac")
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrInvalidInputSymbol)

		var serr *InputSymbolError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, 'c', serr.Symbol)
		assert.Equal(t, 2, serr.Position)
	})
}

func TestSimulate(t *testing.T) {
	t.Run("frontiers", func(t *testing.T) {
		trace, err := Simulate(mustParse(t, endsWithA), "ab")
		require.NoError(t, err)
		require.Len(t, trace.Frontiers, 3)
		assert.Equal(t, "ab", trace.Input)
		assert.False(t, trace.Accepted)

		assert.Equal(t, []string{"p", "q"}, trace.Frontiers[0].States())
		assert.Equal(t, []string{"p", "q", "r"}, trace.Frontiers[1].States())
		assert.True(t, trace.Frontiers[1].Accepting())
		assert.Equal(t, []string{"p", "q"}, trace.Frontiers[2].States())
		assert.False(t, trace.Frontiers[2].Accepting())
	})

	t.Run("frontier dies out", func(t *testing.T) {
		trace, err := Simulate(mustParse(t, exactlyAAA), "ab")
		require.NoError(t, err)
		assert.False(t, trace.Frontiers[1].Empty())
		assert.True(t, trace.Frontiers[2].Empty())
		assert.Empty(t, trace.Frontiers[2].States())
		assert.False(t, trace.Accepted)
	})

	t.Run("prefix recomputation", func(t *testing.T) {
		a := mustParse(t, exactlyAAA)
		full, err := Simulate(a, "aaa")
		require.NoError(t, err)
		prefix, err := Simulate(a, "aa")
		require.NoError(t, err)
		for i, f := range prefix.Frontiers {
			assert.Equal(t, full.Frontiers[i].States(), f.States())
		}
	})

	t.Run("no state visited on bad input", func(t *testing.T) {
		trace, err := Simulate(mustParse(t, exactlyAAA), "xa")
		assert.Nil(t, trace)
		var serr *InputSymbolError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, 0, serr.Position)
	})

	t.Run("start", func(t *testing.T) {
		a := mustParse(t, endsWithA)
		assert.Equal(t, []string{"p", "q"}, a.Start().States())
		assert.False(t, a.Start().Accepting())
	})
}
