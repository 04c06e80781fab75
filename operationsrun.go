package automaton

import "github.com/bits-and-blooms/bitset"

// Frontier is the set of states an automaton can be in after reading some prefix.
type Frontier struct {
	a   *Automaton
	set *bitset.BitSet
}

// Start returns the frontier before any input: the epsilon closure of the initial state.
func (a *Automaton) Start() Frontier {
	return Frontier{a: a, set: a.closure(a.singleton(a.initial))}
}

// next consumes one symbol known to be in the alphabet.
func (f Frontier) next(symbol rune) Frontier {
	return Frontier{a: f.a, set: f.a.closure(f.a.move(f.set, symbol))}
}

// States returns the labels of the frontier, in state order.
func (f Frontier) States() []string {
	return f.a.labels(f.set)
}

// Accepting reports whether the frontier holds a final state.
func (f Frontier) Accepting() bool {
	return f.set.IntersectionCardinality(f.a.isAccept) > 0
}

// Empty reports whether no state is left, after which no continuation is accepted.
func (f Frontier) Empty() bool {
	return f.set.None()
}

// Trace records a simulation: Frontiers[i] is the frontier after the first i characters, so
// Frontiers[0] is the start and the last entry decides acceptance.
type Trace struct {
	Input     string
	Frontiers []Frontier
	Accepted  bool
}

// Simulate runs input through a, deterministic or not, keeping the frontier after every
// character. Interactive callers keep the prefix they have read and simulate it again after
// each keystroke or deletion. A character outside the alphabet fails with *InputSymbolError
// before any state is visited.
func Simulate(a *Automaton, input string) (*Trace, error) {
	runes := []rune(input)
	for i, c := range runes {
		if _, ok := a.symbols[c]; !ok {
			return nil, &InputSymbolError{Symbol: c, Position: i}
		}
	}

	f := a.Start()
	trace := &Trace{Input: input, Frontiers: make([]Frontier, 0, len(runes)+1)}
	trace.Frontiers = append(trace.Frontiers, f)
	for _, c := range runes {
		f = f.next(c)
		trace.Frontiers = append(trace.Frontiers, f)
	}
	trace.Accepted = f.Accepting()
	return trace, nil
}

// Run Returns true if the given string is accepted by the automaton.
func Run(a *Automaton, s string) (bool, error) {
	trace, err := Simulate(a, s)
	if err != nil {
		return false, err
	}
	return trace.Accepted, nil
}
