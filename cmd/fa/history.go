package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/geange/faengine/history"
)

const pLimit = "limit"

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

func HistoryCmd(a *app) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List and manage saved automata",
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recently updated records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt(pLimit)
			if limit <= 0 {
				limit = a.cfg.RecentLimit
			}
			return a.withHistory(func(s *history.Store) error {
				recs, err := s.Recent(cmd.Context(), a.cfg.Owner, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(recs) == 0 {
					fmt.Fprintln(out, "no records")
					return nil
				}
				now := time.Now()
				for _, rec := range recs {
					fmt.Fprintf(out, "#%d\t%s ~ %s\n", rec.ID, rec.Name, since(now, rec.UpdatedAt))
				}
				return nil
			})
		},
	}
	listCmd.Flags().Int(pLimit, 0,
		"Most records to list (default: from config)")

	// Show command
	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Describe a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withHistory(func(s *history.Store) error {
				rec, fa, err := s.Load(cmd.Context(), a.cfg.Owner, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "#%d %s\n", rec.ID, rec.Name)
				fmt.Fprintf(out, "created %s, updated %s\n",
					rec.CreatedAt.Format(time.DateTime), rec.UpdatedAt.Format(time.DateTime))
				printAutomaton(out, fa)
				return nil
			})
		},
	}

	// Rename command
	renameCmd := &cobra.Command{
		Use:     "rename ID NAME",
		Short:   "Rename a record",
		Example: "$ fa history rename 3 exactly three a",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			return a.withHistory(func(s *history.Store) error {
				rec, err := s.Rename(cmd.Context(), a.cfg.Owner, id, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed #%d: %s\n", rec.ID, rec.Name)
				return nil
			})
		},
	}

	// Edit command
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace the automaton of a record, keeping its name",
		Example: "$ fa history edit 3 -s \"q0 q1\" -a a -i q0 -f q1 \\\n" +
			"    -t q0,a=q1 -t q1,a=q1",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fa, err := a.readAutomaton(cmd)
			if err != nil {
				return err
			}
			return a.withHistory(func(s *history.Store) error {
				rec, err := s.Update(cmd.Context(), a.cfg.Owner, id, fa)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated #%d: %s\n", rec.ID, rec.Name)
				return nil
			})
		},
	}
	AddAutomatonFlags(editCmd)

	// Delete command
	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withHistory(func(s *history.Store) error {
				if err := s.Delete(cmd.Context(), a.cfg.Owner, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d\n", id)
				return nil
			})
		},
	}

	historyCmd.AddCommand(listCmd, showCmd, renameCmd, editCmd, deleteCmd)
	return historyCmd
}

// since renders how long ago t was, roughly.
func since(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
