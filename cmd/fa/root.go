package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/geange/faengine/history"
	"github.com/geange/faengine/internal/config"
)

const (
	title   = "fa designs and transforms finite automata"
	example = `- design an NFA and keep it in the history
  $ fa design -s "q0 q1 q2 q3" -a ab -i q0 -f q3 \
      -t q0,a=q1 -t q1,a=q2 -t q2,a=q3
- convert the most recent record to a DFA
  $ fa history list
  $ fa convert --recent 1 --save
- test strings, or type them one keystroke group at a time
  $ fa test --recent 1 aaa aa ""
  $ fa repl --recent 1`
)

const pConfig = "config"

// app is what every command shares once the configuration is loaded.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// withHistory opens the history store for the duration of fn.
func (a *app) withHistory(fn func(s *history.Store) error) error {
	s, err := history.Open(history.Config{
		Path:     a.cfg.HistoryPath,
		CacheTTL: a.cfg.CacheTTL,
		Logger:   a.log,
	})
	if err != nil {
		return err
	}
	return errors.Join(fn(s), s.Close())
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "fa",
		Short:         title,
		Example:       example,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString(pConfig)
			cfg, err := config.Load(cmd.Context(), path)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = cfg.Logger(cmd.ErrOrStderr())
			a.log.Debug("config loaded", "history", cfg.HistoryPath, "owner", cfg.Owner)
			return nil
		},
	}
	rootCmd.PersistentFlags().String(pConfig, "",
		"YAML config file")

	groups := []*cobra.Group{
		{ID: "engine", Title: "Automata"},
		{ID: "history", Title: "History"},
	}
	for _, g := range groups {
		rootCmd.AddGroup(g)
	}

	for _, cmd := range EngineCmds(a) {
		cmd.GroupID = "engine"
		rootCmd.AddCommand(cmd)
	}
	historyCmd := HistoryCmd(a)
	historyCmd.GroupID = "history"
	rootCmd.AddCommand(historyCmd)

	return rootCmd
}
