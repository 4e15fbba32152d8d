// Package cli implements the todo command surface: init, new,
// complete, and list. Each command is a one-shot load-mutate-save
// cycle over the storage file.
package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tiwariParth/todo/internal/config"
	"github.com/tiwariParth/todo/internal/logger"
	"github.com/tiwariParth/todo/internal/storage"
	"github.com/tiwariParth/todo/internal/todo"
)

var bold = color.New(color.Bold).SprintFunc()

// App holds the dependencies shared by all command handlers.
type App struct {
	store *storage.Store
	log   *zap.Logger
}

// NewApp wires an App from an already-resolved store and logger.
func NewApp(store *storage.Store, log *zap.Logger) *App {
	return &App{store: store, log: log}
}

// Root builds the root command and its subcommands. The storage root
// is resolved once, before any handler runs, from the --data-dir flag
// or the per-user default.
func Root() *cobra.Command {
	var (
		dataDir string
		debug   bool
		app     *App
	)

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Personal command-line todo list manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(dataDir, debug)
			if err != nil {
				return err
			}
			app = NewApp(storage.New(cfg.Root), logger.New(cfg.LogDir(), cfg.Debug))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "storage directory (default ~/.todo)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialise storage for todo to use for persistence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Init(cmd)
		},
	}

	newCmd := &cobra.Command{
		Use:   "new <todo text>",
		Short: "Add a new item to the todo list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(cmd, args[0])
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark item <id> as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			return app.Complete(cmd, id)
		},
	}

	var (
		all     bool
		verbose bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.List(cmd, all, verbose)
		},
	}
	listCmd.Flags().BoolVarP(&all, "all", "a", false, "include completed items")
	listCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show creation and completion timestamps")

	root.AddCommand(initCmd, newCmd, completeCmd, listCmd)
	return root
}

// Init creates the storage directory and placeholder file. Directory
// creation is idempotent; an existing storage file is a failure.
func (a *App) Init(cmd *cobra.Command) error {
	defer a.log.Sync()

	fmt.Fprintf(cmd.OutOrStdout(), "path: %s\n", a.store.Dir())
	if err := a.store.Init(); err != nil {
		a.log.Error("init failed", zap.String("dir", a.store.Dir()), zap.Error(err))
		return err
	}
	a.log.Info("storage initialised", zap.String("dir", a.store.Dir()))
	fmt.Fprintln(cmd.OutOrStdout(), "Successfully initialised storage for todo")
	return nil
}

// New loads the list, appends an item with the next id, and saves.
func (a *App) New(cmd *cobra.Command, text string) error {
	defer a.log.Sync()

	list, err := a.load()
	if err != nil {
		return err
	}
	item := list.New(text)
	if err := a.store.Save(list); err != nil {
		a.log.Error("save failed", zap.Error(err))
		return err
	}
	a.log.Info("item added", zap.Int("id", item.ID))
	fmt.Fprintf(cmd.OutOrStdout(), "New item (%s) added to todo list.\n", bold(item.ID))
	return nil
}

// Complete marks the first not-done item with the given id as done.
// An already-done item is reported the same way as a missing one.
func (a *App) Complete(cmd *cobra.Command, id int) error {
	defer a.log.Sync()

	list, err := a.load()
	if err != nil {
		return err
	}
	item, ok := list.Complete(id)
	if !ok {
		a.log.Warn("item not found", zap.Int("id", id))
		return fmt.Errorf("item %d not found", id)
	}
	if err := a.store.Save(list); err != nil {
		a.log.Error("save failed", zap.Error(err))
		return err
	}
	a.log.Info("item completed", zap.Int("id", id))
	fmt.Fprintf(cmd.OutOrStdout(), "Item %d (%s) completed.\n", id, bold(item.Text))
	return nil
}

// List prints the todo list, hiding done items unless all is set.
func (a *App) List(cmd *cobra.Command, all, verbose bool) error {
	defer a.log.Sync()

	list, err := a.load()
	if err != nil {
		return err
	}
	if !all {
		list = list.Active()
	}
	a.log.Debug("listing items", zap.Int("count", len(list)), zap.Bool("all", all))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", bold("TODO List"))
	for _, item := range list {
		fmt.Fprintf(out, "   %s\n", item.Render(verbose))
	}
	return nil
}

func (a *App) load() (todo.List, error) {
	list, err := a.store.Load()
	if err != nil {
		if errors.Is(err, storage.ErrUninitialized) {
			a.log.Warn("storage not initialised", zap.String("file", a.store.File()))
			return nil, fmt.Errorf("couldn't load todo list from storage (run 'todo init' first)")
		}
		a.log.Error("load failed", zap.Error(err))
		return nil, err
	}
	return list, nil
}
