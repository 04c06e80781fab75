package automaton

import "strings"

// Fields returns the textual form of a, which Parse turns back into an equal automaton.
// Epsilon moves are written with an empty symbol, e.g. "q0,=q1".
func (a *Automaton) Fields() Fields {
	alphabet := make([]string, len(a.alphabet))
	for i, sym := range a.alphabet {
		alphabet[i] = string(sym)
	}

	transitions := a.Transitions()
	lines := make([]string, len(transitions))
	for i, t := range transitions {
		sym := ""
		if t.Symbol != Epsilon {
			sym = string(t.Symbol)
		}
		lines[i] = t.Source + "," + sym + "=" + t.Dest
	}

	return Fields{
		States:      strings.Join(a.states, " "),
		Alphabet:    strings.Join(alphabet, " "),
		Initial:     a.Initial(),
		Finals:      strings.Join(a.Finals(), " "),
		Transitions: strings.Join(lines, "\n"),
	}
}
