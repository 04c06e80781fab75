package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	automaton "github.com/geange/faengine"
)

var exactlyAAA = automaton.Fields{
	States:      "q0 q1 q2 q3",
	Alphabet:    "ab",
	Initial:     "q0",
	Finals:      "q3",
	Transitions: "q0,a=q1\nq1,a=q2\nq2,a=q3",
}

func TestBackspace(t *testing.T) {
	testCases := []struct {
		line string
		n    int
		ok   bool
	}{
		{"-1", 1, true},
		{"-12", 12, true},
		{"-0", 0, true},
		{"-", 0, false},
		{"-a", 0, false},
		{"--1", 0, false},
		{"a-1", 0, false},
		{"ab", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			n, ok := backspace(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.n, n)
		})
	}
}

func TestSession_Feed(t *testing.T) {
	fa, err := automaton.Parse(exactlyAAA)
	require.NoError(t, err)
	s := newSession(fa)

	steps := []struct {
		line     string
		input    string
		states   []string
		accepted bool
	}{
		{"a", "a", []string{"q1"}, false},
		{"aa", "aaa", []string{"q3"}, true},
		{"a", "aaaa", []string{}, false},
		{"-1", "aaa", []string{"q3"}, true},
		{" -2 ", "a", []string{"q1"}, false},
		{"-5", "", []string{"q0"}, false},
		{"", "", []string{"q0"}, false},
	}

	for _, step := range steps {
		trace, err := s.feed(step.line)
		require.NoError(t, err, step.line)
		assert.Equal(t, step.input, trace.Input, step.line)
		assert.Equal(t, step.states, trace.Frontiers[len(trace.Frontiers)-1].States(), step.line)
		assert.Equal(t, step.accepted, trace.Accepted, step.line)
	}

	t.Run("bad symbol keeps the prefix", func(t *testing.T) {
		_, err := s.feed("aa")
		require.NoError(t, err)
		_, err = s.feed("ax")
		assert.ErrorIs(t, err, automaton.ErrInvalidInputSymbol)
		assert.Equal(t, "aa", string(s.prefix))
	})
}

func TestSession_Run(t *testing.T) {
	fa, err := automaton.Parse(exactlyAAA)
	require.NoError(t, err)

	var out bytes.Buffer
	err = newSession(fa).run(context.Background(), strings.NewReader("aa\na\n-1\nx\n"), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "ε\t{q0}\trejected", lines[1])
	assert.Equal(t, "aa\t{q2}\trejected", lines[2])
	assert.Equal(t, "aaa\t{q3}\taccepted", lines[3])
	assert.Equal(t, "aa\t{q2}\trejected", lines[4])
	assert.Contains(t, lines[5], "'x' at position 2")
}
