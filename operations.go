package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// DefaultMaxDeterminizedStates is the subset construction ceiling used when none is given.
const DefaultMaxDeterminizedStates = 10000

// Determinize converts a non-deterministic automaton into an equivalent deterministic one using
// epsilon closure and the powerset construction. Each new state is labelled by its member
// states, sorted and joined with '_'. Subsets with no move on a symbol go to a trap state
// labelled "dead", so the result is total.
// Worst case complexity: exponential in number of states.
// Params:	maxStates – maximum number of subset states to create before failing with
//
//	ErrStateSpaceTooLarge; zero or less uses DefaultMaxDeterminizedStates.
//
// Returns ErrAlreadyDeterministic if a is deterministic already.
func Determinize(a *Automaton, maxStates int) (*Automaton, error) {
	if a.IsDeterministic() {
		return nil, ErrAlreadyDeterministic
	}
	if maxStates <= 0 {
		maxStates = DefaultMaxDeterminizedStates
	}

	b := NewBuilder(a.alphabet)
	names := newLabeler()
	newState := NewHashMap[int](WithCapacity(2 * len(a.states)))
	worklist := make([]*bitset.BitSet, 0)

	// Same member set always maps to the same new state
	add := func(set *bitset.BitSet) (int, error) {
		if s, ok := newState.Get(subset{set}); ok {
			return s, nil
		}
		if b.NumStates() >= maxStates {
			return -1, fmt.Errorf("%w: more than %d states", ErrStateSpaceTooLarge, maxStates)
		}
		s := b.CreateState(names.unique(compositeLabel(a.labels(set))))
		b.SetAccept(s, set.IntersectionCardinality(a.isAccept) > 0)
		newState.Set(subset{set}, s)
		worklist = append(worklist, set)
		return s, nil
	}

	start, err := add(a.closure(a.singleton(a.initial)))
	if err != nil {
		return nil, err
	}
	b.SetInitial(start)

	// states are created in worklist order, so the i-th set is state i
	for source := 0; source < len(worklist); source++ {
		set := worklist[source]
		for _, sym := range a.alphabet {
			dest, err := add(a.closure(a.move(set, sym)))
			if err != nil {
				return nil, err
			}
			b.AddTransition(source, sym, dest)
		}
	}

	return b.Finish(), nil
}

// RemoveUnreachable returns a copy of a without the states that cannot be reached from the
// initial state, and the labels of the states it dropped. a is returned as is if every state
// is reachable.
func RemoveUnreachable(a *Automaton) (*Automaton, []string) {
	live := a.reachable()
	if int(live.Count()) == len(a.states) {
		return a, nil
	}

	var dropped []string
	mp := make([]int, len(a.states))
	b := NewBuilder(a.alphabet)
	for s, label := range a.states {
		if !live.Test(uint(s)) {
			dropped = append(dropped, label)
			continue
		}
		mp[s] = b.CreateState(label)
		b.SetAccept(mp[s], a.isAccept.Test(uint(s)))
	}
	b.SetInitial(mp[a.initial])

	symbols := a.symbolOrder()
	for s := range a.states {
		if !live.Test(uint(s)) {
			continue
		}
		for _, sym := range symbols {
			dests, ok := a.moves[s][sym]
			if !ok {
				continue
			}
			// destinations of a live state are live
			for d, e := dests.NextSet(0); e; d, e = dests.NextSet(d + 1) {
				b.AddTransition(mp[s], sym, mp[d])
			}
		}
	}
	return b.Finish(), dropped
}

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if a.isAccept.None() {
		return true
	}
	return a.reachable().IntersectionCardinality(a.isAccept) == 0
}
