package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/todo-journal/internal/model"
	"github.com/nhle/todo-journal/internal/render"
	"github.com/nhle/todo-journal/internal/store"
	"github.com/nhle/todo-journal/internal/timeline"
	"github.com/nhle/todo-journal/internal/todos"
)

// dateLayouts are accepted for --due and --remind, in local time.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC 3339)", s)
}

// readContent resolves --content / --content-file; "-" reads stdin.
func readContent(cmd *cobra.Command) (string, bool, error) {
	if cmd.Flags().Changed("content-file") {
		path, _ := cmd.Flags().GetString("content-file")
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return "", false, fmt.Errorf("reading content: %w", err)
		}
		return string(data), true, nil
	}
	if cmd.Flags().Changed("content") {
		content, _ := cmd.Flags().GetString("content")
		return content, true, nil
	}
	return "", false, nil
}

func addCmd(a *app) *cobra.Command {
	var in model.NewTodo
	var due, remind string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a todo or document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			content, _, err := readContent(cmd)
			if err != nil {
				return err
			}
			in.Content = content
			if due != "" {
				d, err := parseDate(due)
				if err != nil {
					return err
				}
				in.DueDate = &d
			}
			if remind != "" {
				r, err := parseDate(remind)
				if err != nil {
					return err
				}
				in.ReminderAt = &r
			}

			todo, err := a.todos.Create(cmd.Context(), a.userID, in)
			if err != nil {
				return err
			}
			return a.printTodo(cmd, *todo)
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Short description")
	cmd.Flags().StringP("content", "c", "", "Markdown content")
	cmd.Flags().String("content-file", "", "Read Markdown content from a file (- for stdin)")
	cmd.Flags().BoolVar(&in.IsDocument, "document", false, "Store as a standalone document")
	cmd.Flags().BoolVar(&in.IsCompleted, "done", false, "Create already completed")
	cmd.Flags().StringVar(&due, "due", "", "Due date")
	cmd.Flags().StringVar(&remind, "remind", "", "Reminder time")

	return cmd
}

func listCmd(a *app) *cobra.Command {
	var docs, tasks, open bool
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if docs && tasks {
				return errors.New("--documents and --tasks are mutually exclusive")
			}
			f := todos.ListFilter{Offset: offset, Limit: limit}
			if !cmd.Flags().Changed("limit") {
				f.Limit = a.cfg.Todos.DefaultLimit
			}
			switch {
			case docs:
				f.IsDocument = boolPtr(true)
			case tasks:
				f.IsDocument = boolPtr(false)
			}
			if open {
				f.IsCompleted = boolPtr(false)
			}

			list, total, err := a.todos.List(cmd.Context(), a.userID, f)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(cmd, map[string]interface{}{"total": total, "todos": list})
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no todos")
				return nil
			}
			for _, todo := range list {
				fmt.Fprintln(cmd.OutOrStdout(), render.TodoLine(todo))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(list), total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&docs, "documents", false, "Only documents")
	cmd.Flags().BoolVar(&tasks, "tasks", false, "Only tasks")
	cmd.Flags().BoolVar(&open, "open", false, "Only incomplete todos")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many todos")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default from config)")

	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a todo and its embedded tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := a.todos.Get(cmd.Context(), a.userID, args[0])
			if err != nil {
				return err
			}
			return a.printTodo(cmd, *todo)
		},
	}
}

func editCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Update the fields given as flags; others are left alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := a.todos.Get(cmd.Context(), a.userID, args[0])
			if err != nil {
				return err
			}
			patch, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}
			todo, err := a.todos.Update(cmd.Context(), *existing, patch)
			if err != nil {
				return err
			}
			return a.printTodo(cmd, *todo)
		},
	}

	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("description", "d", "", "New description")
	cmd.Flags().StringP("content", "c", "", "New Markdown content")
	cmd.Flags().String("content-file", "", "Read new content from a file (- for stdin)")
	cmd.Flags().Bool("completed", false, "Set completion (--completed=false to reopen)")
	cmd.Flags().Bool("document", false, "Set the document flag")
	cmd.Flags().String("due", "", "New due date (\"none\" clears it)")
	cmd.Flags().String("remind", "", "New reminder time (\"none\" clears it)")

	return cmd
}

// patchFromFlags builds a partial update from the flags the user set.
func patchFromFlags(cmd *cobra.Command) (model.TodoPatch, error) {
	var patch model.TodoPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		patch.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		patch.Description = &v
	}
	content, ok, err := readContent(cmd)
	if err != nil {
		return patch, err
	}
	if ok {
		patch.Content = &content
	}
	if flags.Changed("completed") {
		v, _ := flags.GetBool("completed")
		patch.IsCompleted = &v
	}
	if flags.Changed("document") {
		v, _ := flags.GetBool("document")
		patch.IsDocument = &v
	}
	if flags.Changed("due") {
		v, _ := flags.GetString("due")
		if v == "none" {
			patch.ClearDueDate = true
		} else {
			d, err := parseDate(v)
			if err != nil {
				return patch, err
			}
			patch.DueDate = &d
		}
	}
	if flags.Changed("remind") {
		v, _ := flags.GetString("remind")
		if v == "none" {
			patch.ClearReminder = true
		} else {
			r, err := parseDate(v)
			if err != nil {
				return patch, err
			}
			patch.ReminderAt = &r
		}
	}
	return patch, nil
}

func checkCmd(a *app, completed bool) *cobra.Command {
	use, short := "check [id] [line]", "Check the embedded task at a line index"
	if !completed {
		use, short = "uncheck [id] [line]", "Uncheck the embedded task at a line index"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("line index %q: %w", args[1], err)
			}
			existing, err := a.todos.Get(cmd.Context(), a.userID, args[0])
			if err != nil {
				return err
			}
			todo, err := a.todos.SetEmbeddedTask(cmd.Context(), *existing, line, completed)
			if err != nil {
				return err
			}
			return a.printTodo(cmd, *todo)
		},
	}
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a todo; its history stays on the timeline",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := a.todos.Get(cmd.Context(), a.userID, args[0])
			if err != nil {
				return err
			}
			todo, err := a.todos.Delete(cmd.Context(), *existing)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(cmd, todo)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", render.TodoLine(*todo))
			return nil
		},
	}
}

func (a *app) printTodo(cmd *cobra.Command, todo model.Todo) error {
	if a.asJSON {
		return writeJSON(cmd, todo)
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.TodoDetail(todo, time.Local))
	return nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func boolPtr(b bool) *bool { return &b }

// exitCode maps error conditions to process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return 3
	case errors.Is(err, timeline.ErrInvalidRange),
		errors.Is(err, todos.ErrInvalidRange),
		errors.Is(err, todos.ErrInvalidTodo):
		return 2
	default:
		return 1
	}
}
