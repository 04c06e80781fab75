package automaton

import (
	"strconv"
	"strings"
)

// Minimization is the outcome of Minimize.
type Minimization struct {
	// Automaton is the minimal deterministic automaton.
	Automaton *Automaton
	// Unreachable lists the states dropped because the initial state cannot reach them.
	Unreachable []string
	// AlreadyMinimal is true when no two reachable states were merged.
	AlreadyMinimal bool
}

// Minimize
// Minimizes the given deterministic automaton: unreachable states are dropped, then states are
// merged with Moore's partition refinement until no class splits. A merged state is labelled by
// its members, sorted and joined with '_'; a state that stays alone keeps its label.
// Returns ErrNotDeterministic if a is not deterministic.
func Minimize(a *Automaton) (*Minimization, error) {
	if !a.IsDeterministic() {
		return nil, ErrNotDeterministic
	}

	r, unreachable := RemoveUnreachable(a)
	class, numClasses := refine(r)

	result := &Minimization{
		Unreachable:    unreachable,
		AlreadyMinimal: numClasses == r.GetNumStates(),
	}
	if result.AlreadyMinimal {
		result.Automaton = r
		return result, nil
	}

	members := make([][]int, numClasses)
	for s := range r.states {
		members[class[s]] = append(members[class[s]], s)
	}

	b := NewBuilder(r.alphabet)
	names := newLabeler()
	for _, m := range members {
		labels := make([]string, len(m))
		for i, s := range m {
			labels[i] = r.states[s]
		}
		c := b.CreateState(names.unique(compositeLabel(labels)))
		b.SetAccept(c, r.isAccept.Test(uint(m[0])))
	}
	b.SetInitial(class[r.initial])

	// Same-class states agree on every symbol, any member represents its class
	for c, m := range members {
		for _, sym := range r.alphabet {
			b.AddTransition(c, sym, class[r.step(m[0], sym)])
		}
	}

	result.Automaton = b.Finish()
	return result, nil
}

// refine partitions the states of a total deterministic automaton into equivalence classes.
// Classes are numbered in order of their first member.
func refine(a *Automaton) ([]int, int) {
	class := make([]int, len(a.states))
	blocks := make(map[string]int)
	for s := range a.states {
		key := "n"
		if a.isAccept.Test(uint(s)) {
			key = "f"
		}
		class[s] = blockID(blocks, key)
	}
	count := len(blocks)

	for {
		next := make([]int, len(a.states))
		blocks = make(map[string]int)
		for s := range a.states {
			var sb strings.Builder
			sb.WriteString(strconv.Itoa(class[s]))
			for _, sym := range a.alphabet {
				sb.WriteByte(',')
				sb.WriteString(strconv.Itoa(class[a.step(s, sym)]))
			}
			next[s] = blockID(blocks, sb.String())
		}
		class = next

		// Refinement only ever splits classes, an unchanged count is the fixed point
		if len(blocks) == count {
			return class, count
		}
		count = len(blocks)
	}
}

func blockID(blocks map[string]int, key string) int {
	id, ok := blocks[key]
	if !ok {
		id = len(blocks)
		blocks[key] = id
	}
	return id
}
