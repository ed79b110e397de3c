package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nhle/todo-journal/internal/logging"
	"github.com/nhle/todo-journal/internal/model"
	"github.com/nhle/todo-journal/internal/store"
	"github.com/nhle/todo-journal/internal/timeline"
	"github.com/nhle/todo-journal/internal/todos"
)

var Version = "dev"

// app holds the services a command runs against.
type app struct {
	cfg      *model.AppConfig
	log      *logging.Logger
	store    *store.SQLiteStore
	todos    *todos.Service
	timeline *timeline.Service
	userID   string
	asJSON   bool
}

// close releases whatever open managed to acquire.
func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.log != nil {
			a.log.Warn("closing store", "error", err)
		}
		a.store = nil
	}
	if a.log != nil {
		a.log.Sync()
	}
}

func main() {
	rootCmd, a := newRootCmd()
	err := rootCmd.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	var configPath, userOverride string

	rootCmd := &cobra.Command{
		Use:           "todojournal",
		Short:         "Todos, Markdown documents and a timeline of what changed",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(configPath, userOverride)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&userOverride, "user", "", "Act as this user id (overrides user.id)")
	rootCmd.PersistentFlags().BoolVarP(&a.asJSON, "json", "j", false, "Output as JSON")

	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(showCmd(a))
	rootCmd.AddCommand(editCmd(a))
	rootCmd.AddCommand(checkCmd(a, true))
	rootCmd.AddCommand(checkCmd(a, false))
	rootCmd.AddCommand(removeCmd(a))
	rootCmd.AddCommand(timelineCmd(a))
	rootCmd.AddCommand(historyCmd(a))

	return rootCmd, a
}

// open loads config, builds the logger and opens the store.
func (a *app) open(configPath, userOverride string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log

	dir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	a.store = st
	a.userID = cfg.User.ID
	if userOverride != "" {
		a.userID = userOverride
	}
	a.todos = todos.NewService(st, log)
	a.timeline = timeline.NewService(st, timeline.WithMaxLimit(cfg.Timeline.MaxLimit))
	log.Debug("journal opened", "db", cfg.Database.Path, "user_id", a.userID)
	return nil
}
