package automaton

import (
	"fmt"
	"strings"
)

// ViolationKind names a reason an automaton is not deterministic.
type ViolationKind int

const (
	MissingTransition ViolationKind = iota + 1
	MultipleDestinations
	EpsilonMove
)

func (k ViolationKind) String() string {
	switch k {
	case MissingTransition:
		return "missing transition"
	case MultipleDestinations:
		return "multiple destinations"
	case EpsilonMove:
		return "epsilon move"
	default:
		return fmt.Sprintf("ViolationKind(%d)", int(k))
	}
}

// Violation is one defect that keeps an automaton from being deterministic.
type Violation struct {
	Kind   ViolationKind
	State  string
	Symbol rune
	Dests  []string
}

func (v Violation) String() string {
	switch v.Kind {
	case MissingTransition:
		return fmt.Sprintf("%s: no move for (%s, %s)", v.Kind, v.State, symbolString(v.Symbol))
	default:
		return fmt.Sprintf("%s: (%s, %s) -> {%s}", v.Kind, v.State, symbolString(v.Symbol), strings.Join(v.Dests, ", "))
	}
}

// Classification is the verdict of Classify.
type Classification struct {
	Deterministic bool
	Violations    []Violation
}

// Classify reports whether a is deterministic. If it is not, every violation is listed, ordered
// by state, then epsilon before the alphabet symbols.
func Classify(a *Automaton) Classification {
	violations := classify(a, false)
	return Classification{
		Deterministic: len(violations) == 0,
		Violations:    violations,
	}
}

// classify collects the violations of a, stopping at the first one if firstOnly.
func classify(a *Automaton, firstOnly bool) []Violation {
	var out []Violation
	for s, label := range a.states {
		if dests, ok := a.moves[s][Epsilon]; ok {
			out = append(out, Violation{Kind: EpsilonMove, State: label, Symbol: Epsilon, Dests: a.labels(dests)})
			if firstOnly {
				return out
			}
		}
		for _, sym := range a.alphabet {
			dests, ok := a.moves[s][sym]
			switch {
			case !ok || dests.None():
				out = append(out, Violation{Kind: MissingTransition, State: label, Symbol: sym})
			case dests.Count() > 1:
				out = append(out, Violation{Kind: MultipleDestinations, State: label, Symbol: sym, Dests: a.labels(dests)})
			default:
				continue
			}
			if firstOnly {
				return out
			}
		}
	}
	return out
}
