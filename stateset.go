package automaton

import (
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// deadLabel names the empty subset when subset construction needs a trap state.
const deadLabel = "dead"

// labels returns the labels of the states in set, in state order.
func (a *Automaton) labels(set *bitset.BitSet) []string {
	out := make([]string, 0, set.Count())
	for s, e := set.NextSet(0); e; s, e = set.NextSet(s + 1) {
		if int(s) >= len(a.states) {
			break
		}
		out = append(out, a.states[s])
	}
	return out
}

func (a *Automaton) singleton(state int) *bitset.BitSet {
	set := bitset.New(uint(len(a.states)))
	set.Set(uint(state))
	return set
}

// closure extends set in place with every state reachable from it over zero or more epsilon
// moves, and returns it.
func (a *Automaton) closure(set *bitset.BitSet) *bitset.BitSet {
	work := make([]uint, 0, set.Count())
	for s, e := set.NextSet(0); e; s, e = set.NextSet(s + 1) {
		work = append(work, s)
	}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]

		dests, ok := a.moves[s][Epsilon]
		if !ok {
			continue
		}
		for d, e := dests.NextSet(0); e; d, e = dests.NextSet(d + 1) {
			if !set.Test(d) {
				set.Set(d)
				work = append(work, d)
			}
		}
	}
	return set
}

// move returns the union of the destinations of every state in set on symbol, without closure.
func (a *Automaton) move(set *bitset.BitSet, symbol rune) *bitset.BitSet {
	next := bitset.New(uint(len(a.states)))
	for s, e := set.NextSet(0); e; s, e = set.NextSet(s + 1) {
		if dests, ok := a.moves[s][symbol]; ok {
			next.InPlaceUnion(dests)
		}
	}
	return next
}

// step returns the single destination of (state, symbol) of a deterministic automaton, or -1.
func (a *Automaton) step(state int, symbol rune) int {
	dests, ok := a.moves[state][symbol]
	if !ok {
		return -1
	}
	d, e := dests.NextSet(0)
	if !e {
		return -1
	}
	return int(d)
}

// reachable returns the states reachable from the initial state over any move.
func (a *Automaton) reachable() *bitset.BitSet {
	live := a.singleton(a.initial)
	work := []int{a.initial}
	for len(work) > 0 {
		s := work[0]
		work = work[1:]
		for _, dests := range a.moves[s] {
			for d, e := dests.NextSet(0); e; d, e = dests.NextSet(d + 1) {
				if !live.Test(d) {
					live.Set(d)
					work = append(work, int(d))
				}
			}
		}
	}
	return live
}

// subset is a set of states used as a HashMap key. Sets with the same members are equal
// whatever their capacity.
type subset struct {
	set *bitset.BitSet
}

func (s subset) Hash() uint64 {
	h := phiC64
	for i, e := s.set.NextSet(0); e; i, e = s.set.NextSet(i + 1) {
		h = mix64(h ^ uint64(i))
	}
	return h
}

func (s subset) Equals(other Hashable) bool {
	o, ok := other.(subset)
	return ok && s.set.SymmetricDifferenceCardinality(o.set) == 0
}

// compositeLabel encodes a set of member labels independently of their order.
func compositeLabel(members []string) string {
	if len(members) == 0 {
		return deadLabel
	}
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	return strings.Join(sorted, "_")
}

// labeler hands out labels that are unique within one derived automaton. Distinct member sets
// can join to the same text when member labels contain '_'; later ones get a numeric suffix.
type labeler struct {
	used map[string]struct{}
}

func newLabeler() *labeler {
	return &labeler{used: make(map[string]struct{})}
}

func (l *labeler) unique(label string) string {
	candidate := label
	for i := 1; ; i++ {
		if _, ok := l.used[candidate]; !ok {
			break
		}
		candidate = label + "_" + strconv.Itoa(i)
	}
	l.used[candidate] = struct{}{}
	return candidate
}
