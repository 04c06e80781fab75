package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	automaton "github.com/geange/faengine"
)

const (
	pMaxStates = "max-states"
	pTrace     = "trace"
)

func EngineCmds(a *app) []*cobra.Command {
	// Design command
	designCmd := &cobra.Command{
		Use:   "design",
		Short: "Validate an automaton, describe it and keep it in the history",
		Example: "$ fa design -s \"q0 q1\" -a ab -i q0 -f q1 \\\n" +
			"    -t q0,a=q1 -t q0,b=q0 -t q1,a=q1 -t q1,b=q0",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fa, err := a.readAutomaton(cmd)
			if err != nil {
				return err
			}
			printAutomaton(cmd.OutOrStdout(), fa)
			return a.maybeSave(cmd, fa)
		},
	}
	AddAutomatonFlags(designCmd)
	AddSaveFlags(designCmd, true)

	// Classify command
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Tell whether an automaton is deterministic, listing every violation if not",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fa, err := a.readAutomaton(cmd)
			if err != nil {
				return err
			}
			c := automaton.Classify(fa)
			out := cmd.OutOrStdout()
			if c.Deterministic {
				fmt.Fprintln(out, "DFA")
				return nil
			}
			fmt.Fprintf(out, "NFA (%d violations)\n", len(c.Violations))
			for _, v := range c.Violations {
				fmt.Fprintf(out, "  %s\n", v)
			}
			return nil
		},
	}
	AddAutomatonFlags(classifyCmd)

	// Convert command
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an NFA into an equivalent DFA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fa, err := a.readAutomaton(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt(pMaxStates)
			if limit <= 0 {
				limit = a.cfg.MaxStates
			}

			d, err := automaton.Determinize(fa, limit)
			if errors.Is(err, automaton.ErrAlreadyDeterministic) {
				return fmt.Errorf("nothing to convert: %w", err)
			}
			if err != nil {
				return err
			}
			a.log.Debug("converted", "from", fa.GetNumStates(), "to", d.GetNumStates())

			printAutomaton(cmd.OutOrStdout(), d)
			return a.maybeSave(cmd, d)
		},
	}
	AddAutomatonFlags(convertCmd)
	AddSaveFlags(convertCmd, false)
	convertCmd.Flags().Int(pMaxStates, 0,
		"Most states the DFA may have (default: from config)")

	// Minimize command
	minimizeCmd := &cobra.Command{
		Use:   "minimize",
		Short: "Minimize a DFA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fa, err := a.readAutomaton(cmd)
			if err != nil {
				return err
			}
			m, err := automaton.Minimize(fa)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(m.Unreachable) > 0 {
				fmt.Fprintf(out, "unreachable: {%s}\n", strings.Join(m.Unreachable, ", "))
			}
			if m.AlreadyMinimal {
				fmt.Fprintln(out, "already minimal")
			}
			printAutomaton(out, m.Automaton)
			return a.maybeSave(cmd, m.Automaton)
		},
	}
	AddAutomatonFlags(minimizeCmd)
	AddSaveFlags(minimizeCmd, false)

	// Test command
	testCmd := &cobra.Command{
		Use:     "test STRINGS",
		Short:   "Tell which strings an automaton accepts",
		Example: "$ fa test --recent 1 aaa aa \"\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fa, err := a.readAutomaton(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if trace, _ := cmd.Flags().GetBool(pTrace); trace {
				for _, s := range args {
					t, err := automaton.Simulate(fa, s)
					if err != nil {
						return fmt.Errorf("%s: %w", displayString(s), err)
					}
					printTrace(out, t)
				}
				return nil
			}

			accepted, err := runAll(cmd, fa, args)
			if err != nil {
				return err
			}
			for i, s := range args {
				fmt.Fprintf(out, "%s\t%s\n", displayString(s), verdict(accepted[i]))
			}
			return nil
		},
	}
	AddAutomatonFlags(testCmd)
	testCmd.Flags().Bool(pTrace, false,
		"Print the states after every character")

	// REPL command
	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Type a string piece by piece and watch the current states (-N deletes N characters)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fa, err := a.readAutomaton(cmd)
			if err != nil {
				return err
			}
			return newSession(fa).run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	AddAutomatonFlags(replCmd)

	return []*cobra.Command{designCmd, classifyCmd, convertCmd, minimizeCmd, testCmd, replCmd}
}

// runAll runs every string through fa in parallel, keeping the verdicts in input order.
func runAll(cmd *cobra.Command, fa *automaton.Automaton, inputs []string) ([]bool, error) {
	accepted := make([]bool, len(inputs))
	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range inputs {
		i, s := i, s
		eg.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ok, err := automaton.Run(fa, s)
			if err != nil {
				return fmt.Errorf("%s: %w", displayString(s), err)
			}
			accepted[i] = ok
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return accepted, nil
}

func printAutomaton(w io.Writer, fa *automaton.Automaton) {
	fmt.Fprintf(w, "%s with %d states\n", fa.Kind(), fa.GetNumStates())
	fmt.Fprint(w, fa.String())
}

func printTrace(w io.Writer, t *automaton.Trace) {
	runes := []rune(t.Input)
	for i, f := range t.Frontiers {
		fmt.Fprintf(w, "%s\t{%s}\n", displayString(string(runes[:i])), strings.Join(f.States(), ", "))
	}
	fmt.Fprintf(w, "%s\t%s\n", displayString(t.Input), verdict(t.Accepted))
}

// displayString shows the empty string as ε.
func displayString(s string) string {
	if s == "" {
		return "ε"
	}
	return s
}

func verdict(accepted bool) string {
	if accepted {
		return "accepted"
	}
	return "rejected"
}
