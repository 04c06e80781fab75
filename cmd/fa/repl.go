package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	automaton "github.com/geange/faengine"
)

// session is an interactive string test. It keeps the characters typed so far and simulates
// them again after every line, so deleting characters needs no undo log.
type session struct {
	fa     *automaton.Automaton
	prefix []rune
}

func newSession(fa *automaton.Automaton) *session {
	return &session{fa: fa}
}

// backspace reports whether line is "-N", and N.
func backspace(line string) (int, bool) {
	digits, ok := strings.CutPrefix(line, "-")
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// feed applies one line: "-N" drops the last N characters, anything else is appended. A line
// with a character outside the alphabet is rejected and leaves the prefix as it was.
func (s *session) feed(line string) (*automaton.Trace, error) {
	line = strings.TrimSpace(line)

	if n, ok := backspace(line); ok {
		s.prefix = s.prefix[:max(0, len(s.prefix)-n)]
		return automaton.Simulate(s.fa, string(s.prefix))
	}

	next := append(s.prefix[:len(s.prefix):len(s.prefix)], []rune(line)...)
	trace, err := automaton.Simulate(s.fa, string(next))
	if err != nil {
		return nil, err
	}
	s.prefix = next
	return trace, nil
}

func (s *session) run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Type characters to enter them, -N to delete the last N. End with EOF.")
	trace, err := automaton.Simulate(s.fa, "")
	if err != nil {
		return err
	}
	printStep(out, trace)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		trace, err := s.feed(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "! %v\n", err)
			continue
		}
		printStep(out, trace)
	}
	return scanner.Err()
}

func printStep(w io.Writer, t *automaton.Trace) {
	last := t.Frontiers[len(t.Frontiers)-1]
	fmt.Fprintf(w, "%s\t{%s}\t%s\n", displayString(t.Input), strings.Join(last.States(), ", "), verdict(t.Accepted))
}
