package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	automaton "github.com/geange/faengine"
	"github.com/geange/faengine/history"
)

const (
	pStates          = "states"
	pStatesShort     = "s"
	pAlphabet        = "alphabet"
	pAlphabetShort   = "a"
	pInitial         = "initial"
	pInitialShort    = "i"
	pFinals          = "finals"
	pFinalsShort     = "f"
	pTransition      = "transition"
	pTransitionShort = "t"
	pFile            = "file"
	pRecent          = "recent"
	pRecentShort     = "r"
	pSave            = "save"
	pName            = "name"
)

// AddAutomatonFlags adds the flags an automaton is read from: the five fields, a YAML file
// holding them, or a history record.
func AddAutomatonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP(pStates, pStatesShort, "",
		"States, separated by spaces or commas. Eg: \"q0 q1 q2\"")
	f.StringP(pAlphabet, pAlphabetShort, "",
		"Input symbols, letters or digits. Eg: ab")
	f.StringP(pInitial, pInitialShort, "",
		"Initial state")
	f.StringP(pFinals, pFinalsShort, "",
		"Final states, separated by spaces or commas")
	f.StringArrayP(pTransition, pTransitionShort, nil,
		"Transition, repeatable. Eg: q0,a=q1 q0+a->q1 q0,=q1 (epsilon)")
	f.String(pFile, "",
		"YAML file with the states, alphabet, initial, finals and transitions keys")
	f.Uint64P(pRecent, pRecentShort, 0,
		"Id of a history record to start from")
}

// AddSaveFlags adds the flags that keep a result in the history.
func AddSaveFlags(cmd *cobra.Command, save bool) {
	f := cmd.Flags()
	f.Bool(pSave, save,
		"Keep the automaton in the history")
	f.String(pName, "",
		"Name of the history record (default: generated)")
}

// ParseFields collects the five fields from a YAML file and the field flags; flags win.
func ParseFields(cmd *cobra.Command) (automaton.Fields, error) {
	var fields automaton.Fields
	flags := cmd.Flags()

	if path, _ := flags.GetString(pFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fields, err
		}
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return fields, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if flags.Changed(pStates) {
		fields.States, _ = flags.GetString(pStates)
	}
	if flags.Changed(pAlphabet) {
		fields.Alphabet, _ = flags.GetString(pAlphabet)
	}
	if flags.Changed(pInitial) {
		fields.Initial, _ = flags.GetString(pInitial)
	}
	if flags.Changed(pFinals) {
		fields.Finals, _ = flags.GetString(pFinals)
	}
	if flags.Changed(pTransition) {
		lines, _ := flags.GetStringArray(pTransition)
		fields.Transitions = strings.Join(lines, "\n")
	}
	return fields, nil
}

// readAutomaton returns the automaton named by --recent, or the one given by the field flags.
func (a *app) readAutomaton(cmd *cobra.Command) (*automaton.Automaton, error) {
	if id, _ := cmd.Flags().GetUint64(pRecent); id != 0 {
		var loaded *automaton.Automaton
		err := a.withHistory(func(s *history.Store) error {
			rec, fa, err := s.Load(cmd.Context(), a.cfg.Owner, id)
			if err != nil {
				return err
			}
			a.log.Debug("record loaded", "id", rec.ID, "name", rec.Name)
			loaded = fa
			return nil
		})
		return loaded, err
	}

	fields, err := ParseFields(cmd)
	if err != nil {
		return nil, err
	}
	return automaton.Parse(fields)
}

// maybeSave keeps fa in the history when --save is set.
func (a *app) maybeSave(cmd *cobra.Command, fa *automaton.Automaton) error {
	if save, _ := cmd.Flags().GetBool(pSave); !save {
		return nil
	}
	name, _ := cmd.Flags().GetString(pName)
	return a.withHistory(func(s *history.Store) error {
		rec, err := s.Save(cmd.Context(), a.cfg.Owner, name, fa)
		if err != nil {
			return err
		}
		a.log.Info("record saved", "id", rec.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "saved #%d: %s\n", rec.ID, rec.Name)
		return nil
	})
}
