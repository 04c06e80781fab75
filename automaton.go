package automaton

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// Epsilon is the pseudo-symbol of a move that consumes no input. It is never a
// member of an alphabet.
const Epsilon rune = -1

// Transition is one (source, symbol) -> dest move. Several transitions sharing
// source and symbol accumulate into one non-deterministic entry.
type Transition struct {
	Source string
	Symbol rune
	Dest   string

	// 1-based input line, set by ParseTransitions for error reporting.
	line int
}

// Automaton Represents a validated finite automaton. States are labels kept in input order and
// indexed internally by their position; the transition relation maps (state, symbol) to a set
// of destination states, with Epsilon as the symbol of empty moves. An Automaton is immutable:
// Determinize and Minimize return new instances.
type Automaton struct {
	states []string
	index  map[string]int

	alphabet []rune
	symbols  map[rune]struct{}

	initial  int
	isAccept *bitset.BitSet

	// moves[s] maps a symbol (or Epsilon) to the destinations of s on it.
	moves []map[rune]*bitset.BitSet

	// True if the relation is a total function without epsilon moves.
	deterministic bool
}

// New validates the five raw components and builds an Automaton from them. Duplicate states and
// symbols collapse to their first occurrence. The first broken invariant is returned as a
// *ValidationError.
func New(states []string, alphabet []rune, initial string, finals []string, transitions []Transition) (*Automaton, error) {
	if len(states) == 0 {
		return nil, &ValidationError{Kind: EmptyStates, Field: FieldStates}
	}
	if len(alphabet) == 0 {
		return nil, &ValidationError{Kind: EmptyAlphabet, Field: FieldAlphabet}
	}
	for _, sym := range alphabet {
		if !isSymbol(sym) {
			return nil, &ValidationError{Kind: InvalidAlphabetCharacter, Field: FieldAlphabet, Token: string(sym)}
		}
	}

	b := NewBuilder(alphabet)
	for _, s := range states {
		if !isStateToken(s) {
			return nil, &ValidationError{Kind: MalformedStateToken, Field: FieldStates, Token: s}
		}
		if _, ok := b.a.index[s]; !ok {
			b.CreateState(s)
		}
	}

	start, ok := b.a.index[initial]
	if !ok {
		return nil, &ValidationError{Kind: UnknownInitialState, Field: FieldInitial, Token: initial}
	}
	b.SetInitial(start)

	for _, f := range finals {
		s, ok := b.a.index[f]
		if !ok {
			return nil, &ValidationError{Kind: UnknownFinalState, Field: FieldFinals, Token: f}
		}
		b.SetAccept(s, true)
	}

	for i, t := range transitions {
		line := t.line
		if line == 0 {
			line = i + 1
		}
		src, ok := b.a.index[t.Source]
		if !ok {
			return nil, &ValidationError{Kind: UnknownTransitionState, Field: FieldTransitions, Token: t.Source, Line: line}
		}
		dst, ok := b.a.index[t.Dest]
		if !ok {
			return nil, &ValidationError{Kind: UnknownTransitionState, Field: FieldTransitions, Token: t.Dest, Line: line}
		}
		if t.Symbol != Epsilon {
			if _, ok := b.a.symbols[t.Symbol]; !ok {
				return nil, &ValidationError{Kind: UnknownTransitionSymbol, Field: FieldTransitions, Token: string(t.Symbol), Line: line}
			}
		}
		b.AddTransition(src, t.Symbol, dst)
	}

	return b.Finish(), nil
}

func isStateRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isStateToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isStateRune(r) {
			return false
		}
	}
	return true
}

func isSymbol(r rune) bool {
	return r != 'ε' && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Builder assembles an Automaton from already validated, index-addressed parts. It is used by
// New and by the operations that derive new automata.
type Builder struct {
	a *Automaton
}

func NewBuilder(alphabet []rune) *Builder {
	a := &Automaton{
		index:    make(map[string]int),
		symbols:  make(map[rune]struct{}, len(alphabet)),
		isAccept: bitset.New(0),
	}
	for _, sym := range alphabet {
		if _, ok := a.symbols[sym]; ok {
			continue
		}
		a.symbols[sym] = struct{}{}
		a.alphabet = append(a.alphabet, sym)
	}
	return &Builder{a: a}
}

// CreateState Create a new state with the given label and return its index.
func (b *Builder) CreateState(label string) int {
	state := len(b.a.states)
	b.a.states = append(b.a.states, label)
	b.a.index[label] = state
	b.a.moves = append(b.a.moves, nil)
	return state
}

// SetAccept Set or clear this state as an accept state.
func (b *Builder) SetAccept(state int, accept bool) {
	b.a.isAccept.SetTo(uint(state), accept)
}

func (b *Builder) SetInitial(state int) {
	b.a.initial = state
}

// AddTransition Add dest to the destinations of (source, symbol).
func (b *Builder) AddTransition(source int, symbol rune, dest int) {
	if b.a.moves[source] == nil {
		b.a.moves[source] = make(map[rune]*bitset.BitSet)
	}
	dests, ok := b.a.moves[source][symbol]
	if !ok {
		dests = bitset.New(uint(len(b.a.states)))
		b.a.moves[source][symbol] = dests
	}
	dests.Set(uint(dest))
}

func (b *Builder) NumStates() int {
	return len(b.a.states)
}

// Finish returns the built automaton. The builder must not be used afterwards.
func (b *Builder) Finish() *Automaton {
	a := b.a
	b.a = nil
	a.deterministic = len(classify(a, true)) == 0
	return a
}

// IsDeterministic Returns true if this automaton has no epsilon moves and exactly one
// destination for every state and symbol.
func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

// Kind reports "DFA" or "NFA".
func (a *Automaton) Kind() string {
	if a.deterministic {
		return "DFA"
	}
	return "NFA"
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return len(a.states)
}

// GetNumTransitions How many (source, symbol, dest) triples the relation holds.
func (a *Automaton) GetNumTransitions() int {
	n := 0
	for _, m := range a.moves {
		for _, dests := range m {
			n += int(dests.Count())
		}
	}
	return n
}

// States returns the state labels in input order.
func (a *Automaton) States() []string {
	return slices.Clone(a.states)
}

// Alphabet returns the symbols in input order.
func (a *Automaton) Alphabet() []rune {
	return slices.Clone(a.alphabet)
}

func (a *Automaton) Initial() string {
	return a.states[a.initial]
}

// Finals returns the accepting states in input order.
func (a *Automaton) Finals() []string {
	return a.labels(a.isAccept)
}

// IsAccept Returns true if the labelled state is an accept state.
func (a *Automaton) IsAccept(state string) bool {
	s, ok := a.index[state]
	return ok && a.isAccept.Test(uint(s))
}

// HasState reports whether label is one of the states.
func (a *Automaton) HasState(label string) bool {
	_, ok := a.index[label]
	return ok
}

// Destinations returns the destinations of (state, symbol) in state order, or nil if no move is
// defined for the pair.
func (a *Automaton) Destinations(state string, symbol rune) []string {
	s, ok := a.index[state]
	if !ok {
		return nil
	}
	dests, ok := a.moves[s][symbol]
	if !ok {
		return nil
	}
	return a.labels(dests)
}

// symbolOrder lists the keys a state may have moves on: Epsilon first, then the alphabet.
func (a *Automaton) symbolOrder() []rune {
	return append([]rune{Epsilon}, a.alphabet...)
}

// Transitions returns every move of the relation, ordered by source state, then symbol
// (epsilon first, then alphabet order), then destination state.
func (a *Automaton) Transitions() []Transition {
	var out []Transition
	symbols := a.symbolOrder()
	for s := range a.states {
		for _, sym := range symbols {
			dests, ok := a.moves[s][sym]
			if !ok {
				continue
			}
			for d, e := dests.NextSet(0); e; d, e = dests.NextSet(d + 1) {
				out = append(out, Transition{Source: a.states[s], Symbol: sym, Dest: a.states[d]})
			}
		}
	}
	return out
}

// Equal reports whether a and b have the same states, alphabet, initial state, final states and
// transitions, regardless of the order their labels were declared in.
func Equal(a, b *Automaton) bool {
	if a.GetNumStates() != b.GetNumStates() || len(a.alphabet) != len(b.alphabet) {
		return false
	}
	if a.Initial() != b.Initial() {
		return false
	}
	for _, s := range a.states {
		if !b.HasState(s) || a.IsAccept(s) != b.IsAccept(s) {
			return false
		}
	}
	for _, sym := range a.alphabet {
		if _, ok := b.symbols[sym]; !ok {
			return false
		}
	}

	at, bt := a.Transitions(), b.Transitions()
	if len(at) != len(bt) {
		return false
	}
	seen := make(map[Transition]struct{}, len(at))
	for _, t := range at {
		seen[t] = struct{}{}
	}
	for _, t := range bt {
		if _, ok := seen[t]; !ok {
			return false
		}
	}
	return true
}

func symbolString(sym rune) string {
	if sym == Epsilon {
		return "ε"
	}
	return string(sym)
}

func (a *Automaton) String() string {
	var sb strings.Builder
	alphabet := make([]string, len(a.alphabet))
	for i, sym := range a.alphabet {
		alphabet[i] = string(sym)
	}
	fmt.Fprintf(&sb, "States: {%s}\n", strings.Join(a.states, ", "))
	fmt.Fprintf(&sb, "Alphabet: {%s}\n", strings.Join(alphabet, ", "))
	fmt.Fprintf(&sb, "Initial: %s\n", a.Initial())
	fmt.Fprintf(&sb, "Finals: {%s}\n", strings.Join(a.Finals(), ", "))
	sb.WriteString("Transitions:\n")
	symbols := a.symbolOrder()
	for s := range a.states {
		for _, sym := range symbols {
			dests, ok := a.moves[s][sym]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "  (%s, %s) -> {%s}\n", a.states[s], symbolString(sym), strings.Join(a.labels(dests), ", "))
		}
	}
	return sb.String()
}
