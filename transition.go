package automaton

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// A transition line is "source SEP symbol ARROW dest", e.g. "q0,a=q1", "q0+a->q1" or "q0 a > q1".
// Leaving the symbol out after a separator ("q0,=q1") or writing ε denotes an epsilon move.
var transitionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[\p{L}\p{N}_]+`},
	{Name: "Arrow", Pattern: `->|=>|=|>`},
	{Name: "Sep", Pattern: `[,+]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

type transitionLine struct {
	Source string       `parser:"@Word"`
	Input  *symbolInput `parser:"@@"`
	Dest   string       `parser:"Arrow @Word"`
}

type symbolInput struct {
	Separated *separatedSymbol `parser:"  @@"`
	Bare      *string          `parser:"| @Word"`
}

type separatedSymbol struct {
	Symbol *string `parser:"Sep @Word?"`
}

func (in *symbolInput) symbol() *string {
	if in.Separated != nil {
		return in.Separated.Symbol
	}
	return in.Bare
}

var transitionParser = participle.MustBuild[transitionLine](
	participle.Lexer(transitionLexer),
	participle.Elide("Whitespace"),
)

// ParseTransitions recognizes the transitions field, one move per line; blank lines are
// skipped. States and symbols are checked against the rest of the automaton by New.
func ParseTransitions(s string) ([]Transition, error) {
	var out []Transition
	for i, raw := range strings.Split(s, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		t, err := parseTransitionLine(line, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseTransitionLine(line string, n int) (Transition, error) {
	parsed, err := transitionParser.ParseString("", line)
	if err != nil {
		return Transition{}, &ValidationError{Kind: MalformedTransitionLine, Field: FieldTransitions, Token: line, Line: n}
	}

	t := Transition{Source: parsed.Source, Symbol: Epsilon, Dest: parsed.Dest, line: n}
	sym := parsed.Input.symbol()
	if sym == nil || *sym == "ε" {
		return t, nil
	}
	r, size := utf8.DecodeRuneInString(*sym)
	if size != len(*sym) || !isSymbol(r) {
		return Transition{}, &ValidationError{Kind: UnknownTransitionSymbol, Field: FieldTransitions, Token: *sym, Line: n}
	}
	t.Symbol = r
	return t, nil
}
