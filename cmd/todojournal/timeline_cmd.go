package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/todo-journal/internal/model"
	"github.com/nhle/todo-journal/internal/render"
)

// localOffsetMinutes returns the local zone's offset in the client
// convention: minutes to add to local time to reach UTC.
func localOffsetMinutes(now time.Time) int {
	_, secs := now.Zone()
	return -secs / 60
}

func timelineCmd(a *app) *cobra.Command {
	var today bool
	var tzOffset, offset, limit int

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show recent activity, or only today's",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				entries []model.ActivityLogEntry
				heading string
				err     error
			)
			if today {
				if !cmd.Flags().Changed("tz-offset") {
					tzOffset = localOffsetMinutes(time.Now())
				}
				heading = "Today"
				entries, err = a.timeline.ListToday(cmd.Context(), a.userID, tzOffset)
			} else {
				if !cmd.Flags().Changed("limit") {
					limit = a.cfg.Timeline.DefaultLimit
				}
				heading = "Recent activity"
				entries, err = a.timeline.ListRecent(cmd.Context(), a.userID, offset, limit)
			}
			if err != nil {
				return err
			}
			return a.printEntries(cmd, heading, entries)
		},
	}

	cmd.Flags().BoolVar(&today, "today", false, "Only entries since local midnight")
	cmd.Flags().IntVar(&tzOffset, "tz-offset", 0, "Client timezone offset in minutes, east of UTC negative (default: local zone)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many entries")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default from config)")

	return cmd
}

func historyCmd(a *app) *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show the activity recorded for one todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := a.todos.Get(cmd.Context(), a.userID, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Timeline.DefaultLimit
			}
			entries, err := a.timeline.ListForTodo(cmd.Context(), a.userID, todo.ID, offset, limit)
			if err != nil {
				return err
			}
			return a.printEntries(cmd, todo.Title, entries)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many entries")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default from config)")

	return cmd
}

func (a *app) printEntries(cmd *cobra.Command, heading string, entries []model.ActivityLogEntry) error {
	if a.asJSON {
		return writeJSON(cmd, entries)
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Timeline(heading, entries, time.Local))
	return nil
}
