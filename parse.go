package automaton

import (
	"strings"
	"unicode"
)

// Fields is the five-field textual form an automaton is entered, stored and exchanged in.
type Fields struct {
	States      string `json:"states" yaml:"states" msgpack:"states"`
	Alphabet    string `json:"alphabet" yaml:"alphabet" msgpack:"alphabet"`
	Initial     string `json:"initial" yaml:"initial" msgpack:"initial"`
	Finals      string `json:"finals" yaml:"finals" msgpack:"finals"`
	Transitions string `json:"transitions" yaml:"transitions" msgpack:"transitions"`
}

// Parse recognizes each field and builds the automaton. Nothing is built unless every field
// is valid.
func Parse(f Fields) (*Automaton, error) {
	states, err := ParseStates(f.States)
	if err != nil {
		return nil, err
	}
	alphabet, err := ParseAlphabet(f.Alphabet)
	if err != nil {
		return nil, err
	}
	initial, err := ParseInitial(f.Initial)
	if err != nil {
		return nil, err
	}
	finals, err := ParseFinals(f.Finals)
	if err != nil {
		return nil, err
	}
	transitions, err := ParseTransitions(f.Transitions)
	if err != nil {
		return nil, err
	}
	return New(states, alphabet, initial, finals, transitions)
}

func isTokenSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// splitStates splits s on runs of whitespace and commas and checks every token is a run of
// letters, digits and underscores. Later duplicates are dropped.
func splitStates(field Field, s string) ([]string, error) {
	tokens := strings.FieldsFunc(s, isTokenSeparator)
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if !isStateToken(tok) {
			return nil, &ValidationError{Kind: MalformedStateToken, Field: field, Token: tok}
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out, nil
}

// ParseStates recognizes the states field, e.g. "q0 q1, q2".
func ParseStates(s string) ([]string, error) {
	states, err := splitStates(FieldStates, s)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, &ValidationError{Kind: EmptyStates, Field: FieldStates}
	}
	return states, nil
}

// ParseAlphabet recognizes the alphabet field. Every letter or digit is one symbol, so "ab",
// "a b" and "a,b" are the same alphabet.
func ParseAlphabet(s string) ([]rune, error) {
	var out []rune
	seen := make(map[rune]struct{})
	for _, r := range s {
		if isTokenSeparator(r) {
			continue
		}
		if !isSymbol(r) {
			return nil, &ValidationError{Kind: InvalidAlphabetCharacter, Field: FieldAlphabet, Token: string(r)}
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, &ValidationError{Kind: EmptyAlphabet, Field: FieldAlphabet}
	}
	return out, nil
}

// ParseInitial recognizes the initial state field. Only the first token counts.
func ParseInitial(s string) (string, error) {
	tokens := strings.FieldsFunc(s, isTokenSeparator)
	if len(tokens) == 0 {
		return "", &ValidationError{Kind: UnknownInitialState, Field: FieldInitial}
	}
	if !isStateToken(tokens[0]) {
		return "", &ValidationError{Kind: MalformedStateToken, Field: FieldInitial, Token: tokens[0]}
	}
	return tokens[0], nil
}

// ParseFinals recognizes the final states field. It may be empty.
func ParseFinals(s string) ([]string, error) {
	return splitStates(FieldFinals, s)
}
