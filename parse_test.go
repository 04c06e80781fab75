package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStates(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"q0 q1 q2", []string{"q0", "q1", "q2"}},
		{"q0,q1, q2", []string{"q0", "q1", "q2"}},
		{"  q0 ,\tq1\n", []string{"q0", "q1"}},
		{"q0 q1 q0 Q0", []string{"q0", "q1", "Q0"}},
		{"start_1 end", []string{"start_1", "end"}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			states, err := ParseStates(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, states)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := ParseStates(" , ")
		requireValidation(t, err, EmptyStates, FieldStates)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, input := range []string{"q0 q1-q2", "{q0}", "q0;q1"} {
			_, err := ParseStates(input)
			requireValidation(t, err, MalformedStateToken, FieldStates)
		}
	})
}

func TestParseAlphabet(t *testing.T) {
	for _, input := range []string{"ab", "a b", "a,b", "a, b, a"} {
		alphabet, err := ParseAlphabet(input)
		require.NoError(t, err)
		assert.Equal(t, []rune("ab"), alphabet, input)
	}

	alphabet, err := ParseAlphabet("01x")
	require.NoError(t, err)
	assert.Equal(t, []rune("01x"), alphabet)

	t.Run("invalid character", func(t *testing.T) {
		_, err := ParseAlphabet("a-b")
		verr := requireValidation(t, err, InvalidAlphabetCharacter, FieldAlphabet)
		assert.Equal(t, "-", verr.Token)
	})

	t.Run("epsilon is reserved", func(t *testing.T) {
		_, err := ParseAlphabet("a ε")
		requireValidation(t, err, InvalidAlphabetCharacter, FieldAlphabet)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseAlphabet(" ")
		requireValidation(t, err, EmptyAlphabet, FieldAlphabet)
	})
}

func TestParseInitial(t *testing.T) {
	initial, err := ParseInitial(" q1 q2,q3")
	require.NoError(t, err)
	assert.Equal(t, "q1", initial)

	_, err = ParseInitial("")
	requireValidation(t, err, UnknownInitialState, FieldInitial)

	_, err = ParseInitial("q-1")
	requireValidation(t, err, MalformedStateToken, FieldInitial)
}

func TestParseFinals(t *testing.T) {
	finals, err := ParseFinals("")
	require.NoError(t, err)
	assert.Empty(t, finals)

	finals, err = ParseFinals("q2, q3 q2")
	require.NoError(t, err)
	assert.Equal(t, []string{"q2", "q3"}, finals)

	_, err = ParseFinals("q2 q3!")
	requireValidation(t, err, MalformedStateToken, FieldFinals)
}

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a := mustParse(t, exactlyAAA)
		assert.Equal(t, []string{"q0", "q1", "q2", "q3"}, a.States())
		assert.Equal(t, []rune("ab"), a.Alphabet())
		assert.Equal(t, "q0", a.Initial())
		assert.Equal(t, []string{"q3"}, a.Finals())
		assert.Equal(t, 3, a.GetNumTransitions())
	})

	t.Run("accumulates destinations", func(t *testing.T) {
		a := mustParse(t, twoWays)
		assert.Equal(t, []string{"s", "t"}, a.Destinations("s", 'a'))
	})

	testCases := []struct {
		name   string
		fields Fields
		kind   ErrorKind
		field  Field
		token  string
		line   int
	}{
		{
			name:   "initial not a state",
			fields: Fields{States: "q0 q1", Alphabet: "a", Initial: "q2"},
			kind:   UnknownInitialState,
			field:  FieldInitial,
			token:  "q2",
		},
		{
			name:   "final not a state",
			fields: Fields{States: "q0 q1", Alphabet: "a", Initial: "q0", Finals: "q1 q5"},
			kind:   UnknownFinalState,
			field:  FieldFinals,
			token:  "q5",
		},
		{
			name:   "malformed line",
			fields: Fields{States: "q0 q1", Alphabet: "a", Initial: "q0", Transitions: "q0,a=q1\n\nq1=q0"},
			kind:   MalformedTransitionLine,
			field:  FieldTransitions,
			token:  "q1=q0",
			line:   3,
		},
		{
			name:   "undeclared state",
			fields: Fields{States: "q0 q1", Alphabet: "a", Initial: "q0", Transitions: "q0,a=q1\nq1,a=q7"},
			kind:   UnknownTransitionState,
			field:  FieldTransitions,
			token:  "q7",
			line:   2,
		},
		{
			name:   "undeclared symbol",
			fields: Fields{States: "q0 q1", Alphabet: "a", Initial: "q0", Transitions: "q0,b=q1"},
			kind:   UnknownTransitionSymbol,
			field:  FieldTransitions,
			token:  "b",
			line:   1,
		},
		{
			name:   "states checked first",
			fields: Fields{States: "", Alphabet: "", Initial: "", Transitions: "garbage"},
			kind:   EmptyStates,
			field:  FieldStates,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Parse(tc.fields)
			assert.Nil(t, a)
			verr := requireValidation(t, err, tc.kind, tc.field)
			assert.Equal(t, tc.token, verr.Token)
			assert.Equal(t, tc.line, verr.Line)
		})
	}
}
