package automaton

import (
	"slices"
	"strconv"
)

// MakeEmpty
// Returns a new deterministic automaton over alphabet with the empty language.
func MakeEmpty(alphabet []rune) (*Automaton, error) {
	transitions := make([]Transition, 0, len(alphabet))
	for _, sym := range alphabet {
		transitions = append(transitions, Transition{Source: "q0", Symbol: sym, Dest: "q0"})
	}
	return New([]string{"q0"}, alphabet, "q0", nil, transitions)
}

// MakeEmptyString
// Returns a new deterministic automaton over alphabet that accepts only the empty string.
func MakeEmptyString(alphabet []rune) (*Automaton, error) {
	return MakeString(alphabet, "")
}

// MakeAnyString
// Returns a new deterministic automaton that accepts all strings over alphabet.
func MakeAnyString(alphabet []rune) (*Automaton, error) {
	transitions := make([]Transition, 0, len(alphabet))
	for _, sym := range alphabet {
		transitions = append(transitions, Transition{Source: "q0", Symbol: sym, Dest: "q0"})
	}
	return New([]string{"q0"}, alphabet, "q0", []string{"q0"}, transitions)
}

// MakeString
// Returns a new deterministic automaton over alphabet that accepts only s. States are q0..qn
// along s plus a trap state.
func MakeString(alphabet []rune, s string) (*Automaton, error) {
	runes := []rune(s)
	for i, c := range runes {
		if !slices.Contains(alphabet, c) {
			return nil, &InputSymbolError{Symbol: c, Position: i}
		}
	}

	states := make([]string, 0, len(runes)+2)
	for i := 0; i <= len(runes); i++ {
		states = append(states, "q"+strconv.Itoa(i))
	}
	states = append(states, deadLabel)

	var transitions []Transition
	for i, state := range states[:len(runes)+1] {
		for _, sym := range alphabet {
			dest := deadLabel
			if i < len(runes) && runes[i] == sym {
				dest = states[i+1]
			}
			transitions = append(transitions, Transition{Source: state, Symbol: sym, Dest: dest})
		}
	}
	for _, sym := range alphabet {
		transitions = append(transitions, Transition{Source: deadLabel, Symbol: sym, Dest: deadLabel})
	}

	return New(states, alphabet, "q0", []string{states[len(runes)]}, transitions)
}
