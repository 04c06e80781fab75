package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransitions(t *testing.T) {
	t.Run("shapes", func(t *testing.T) {
		testCases := []struct {
			line     string
			expected Transition
		}{
			{"q0,a=q1", Transition{Source: "q0", Symbol: 'a', Dest: "q1"}},
			{"q0+a->q1", Transition{Source: "q0", Symbol: 'a', Dest: "q1"}},
			{"q0 a > q1", Transition{Source: "q0", Symbol: 'a', Dest: "q1"}},
			{"q0, a => q1", Transition{Source: "q0", Symbol: 'a', Dest: "q1"}},
			{"  s_1 , 0 = s_2  ", Transition{Source: "s_1", Symbol: '0', Dest: "s_2"}},
			{"q0,=q1", Transition{Source: "q0", Symbol: Epsilon, Dest: "q1"}},
			{"q0+->q1", Transition{Source: "q0", Symbol: Epsilon, Dest: "q1"}},
			{"q0,ε=q1", Transition{Source: "q0", Symbol: Epsilon, Dest: "q1"}},
			{"q0 ε -> q1", Transition{Source: "q0", Symbol: Epsilon, Dest: "q1"}},
		}

		for _, tc := range testCases {
			t.Run(tc.line, func(t *testing.T) {
				transitions, err := ParseTransitions(tc.line)
				require.NoError(t, err)
				require.Len(t, transitions, 1)
				got := transitions[0]
				assert.Equal(t, tc.expected.Source, got.Source)
				assert.Equal(t, tc.expected.Symbol, got.Symbol)
				assert.Equal(t, tc.expected.Dest, got.Dest)
			})
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, line := range []string{"q0=q1", "q0,a", "q0,a=q1 extra", "q0;a=q1", "q0,a==q1", "q0,a-q1", "q0 =q1", ",a=q1"} {
			t.Run(line, func(t *testing.T) {
				_, err := ParseTransitions(line)
				verr := requireValidation(t, err, MalformedTransitionLine, FieldTransitions)
				assert.Equal(t, line, verr.Token)
				assert.Equal(t, 1, verr.Line)
			})
		}
	})

	t.Run("symbol longer than one character", func(t *testing.T) {
		_, err := ParseTransitions("q0,ab=q1")
		verr := requireValidation(t, err, UnknownTransitionSymbol, FieldTransitions)
		assert.Equal(t, "ab", verr.Token)
	})

	t.Run("symbol is not a letter or digit", func(t *testing.T) {
		_, err := ParseTransitions("q0,_=q1")
		requireValidation(t, err, UnknownTransitionSymbol, FieldTransitions)
	})

	t.Run("blank lines", func(t *testing.T) {
		transitions, err := ParseTransitions("\nq0,a=q1\n   \r\nq1,b=q0\n")
		require.NoError(t, err)
		require.Len(t, transitions, 2)
		assert.Equal(t, 2, transitions[0].line)
		assert.Equal(t, 4, transitions[1].line)
	})

	t.Run("empty field", func(t *testing.T) {
		transitions, err := ParseTransitions("")
		require.NoError(t, err)
		assert.Empty(t, transitions)
	})
}
