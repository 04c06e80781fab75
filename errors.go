package automaton

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why raw automaton input was rejected.
type ErrorKind int

const (
	MalformedStateToken ErrorKind = iota + 1
	InvalidAlphabetCharacter
	UnknownInitialState
	UnknownFinalState
	MalformedTransitionLine
	UnknownTransitionState
	UnknownTransitionSymbol
	EmptyStates
	EmptyAlphabet
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedStateToken:
		return "malformed state token"
	case InvalidAlphabetCharacter:
		return "invalid alphabet character"
	case UnknownInitialState:
		return "initial state not in state set"
	case UnknownFinalState:
		return "final state not in state set"
	case MalformedTransitionLine:
		return "malformed transition line"
	case UnknownTransitionState:
		return "transition references undeclared state"
	case UnknownTransitionSymbol:
		return "transition references undeclared symbol"
	case EmptyStates:
		return "state set is empty"
	case EmptyAlphabet:
		return "alphabet is empty"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Field names one of the five textual fields of an automaton.
type Field string

const (
	FieldStates      Field = "states"
	FieldAlphabet    Field = "alphabet"
	FieldInitial     Field = "initial"
	FieldFinals      Field = "finals"
	FieldTransitions Field = "transitions"
)

// ValidationError reports raw input that cannot form an automaton. Token is the
// offending token or line as written; Line is the 1-based transition line, or 0.
type ValidationError struct {
	Kind  ErrorKind
	Field Field
	Token string
	Line  int
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Kind)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Token != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Token)
	}
	return msg
}

var (
	ErrAlreadyDeterministic = errors.New("automaton is already deterministic")
	ErrNotDeterministic     = errors.New("automaton is not deterministic")
	ErrStateSpaceTooLarge   = errors.New("subset construction exceeds the state ceiling")
	ErrInvalidInputSymbol   = errors.New("input symbol is not in the alphabet")
)

// InputSymbolError is returned when a simulated string holds a character outside
// the alphabet. Position is the 0-based index of the character in the string.
type InputSymbolError struct {
	Symbol   rune
	Position int
}

func (e *InputSymbolError) Error() string {
	return fmt.Sprintf("input symbol %q at position %d is not in the alphabet", e.Symbol, e.Position)
}

func (e *InputSymbolError) Is(target error) bool {
	return target == ErrInvalidInputSymbol
}
