// Package cmd implements the CLI command structure for taskr.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskr/internal/config"
	"github.com/nibzard/taskr/internal/logging"
	"github.com/nibzard/taskr/internal/prompt"
	"github.com/nibzard/taskr/internal/shell"
	"github.com/nibzard/taskr/internal/store"
	"github.com/nibzard/taskr/internal/task"
	"github.com/nibzard/taskr/internal/tracker"
	"github.com/nibzard/taskr/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the taskr CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	logger.Debug("config loaded", "store", cfg.StoreFile, "backend", cfg.Backend, "files", config.ConfigFiles())

	// Determine the subcommand; the interactive shell is the default
	subcommand := "shell"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "shell":
		return shellCommand(ctx, cfg, logger, remainingArgs)
	case "ls":
		return lsCommand(ctx, cfg, logger, remainingArgs)
	case "check":
		return checkCommand(ctx, cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore opens the configured backend.
func openStore(cfg *config.Config, logger *log.Logger) (store.Gateway, error) {
	gw, err := store.Open(cfg.Backend, cfg.StoreFile,
		store.WithAtomicWrite(cfg.AtomicWrite),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return gw, nil
}

func noArgs(name string, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("%s: unexpected arguments: %v", name, rest)
	}
	return nil
}

// shellCommand runs the interactive menu session.
func shellCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskr shell", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := noArgs("shell", fs, args); err != nil {
		return err
	}

	gw, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	p := prompt.New(stdin, stdout, prompt.WithMaxAttempts(cfg.DateAttempts))
	tr := tracker.New(gw, stdout, logger)
	return shell.New(tr, p, logger).Run(ctx)
}

// lsCommand prints tasks without entering the shell.
func lsCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskr ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	status := fs.String("status", "", "Filter by status (pending|completed)")
	byDue := fs.Bool("sort", false, "Sort by due date")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 1 && *status == "" {
		*status = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("ls: unexpected arguments: %v", remaining)
	}

	gw, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	return tracker.New(gw, stdout, logger).View(ctx, *status, *byDue)
}

// checkCommand loads and validates the store, listing every problem found.
func checkCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskr check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := noArgs("check", fs, args); err != nil {
		return err
	}

	gw, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Store: %s (%s)\n", store.PathOf(gw), cfg.Backend)
	tasks, err := gw.Load(ctx)
	if err != nil {
		var corrupt *store.CorruptError
		if errors.As(err, &corrupt) {
			fmt.Fprintf(stdout, "  Error: %v\n", corrupt.Err)
			for _, p := range corrupt.Problems {
				fmt.Fprintf(stdout, "  - %v\n", p)
			}
		}
		return fmt.Errorf("check failed: %w", err)
	}

	counts := task.Counts(tasks)
	fmt.Fprintf(stdout, "  OK: %d tasks (%d pending, %d completed)\n",
		len(tasks), counts[task.StatusPending], counts[task.StatusCompleted])
	return nil
}

// tuiCommand launches the read-only viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskr tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := noArgs("tui", fs, args); err != nil {
		return err
	}

	gw, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	return ui.Run(ctx, gw, store.PathOf(gw))
}

// configCommand prints the effective configuration or an example file.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskr config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := noArgs("config", fs, args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	if files := config.ConfigFiles(); len(files) > 0 {
		fmt.Fprintf(stdout, "# Loaded from: %s\n", strings.Join(files, ", "))
	} else {
		fmt.Fprintln(stdout, "# No config files found, showing defaults with overrides")
	}
	out, err := cfg.Encode()
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}

func versionCommand() error {
	fmt.Fprintf(stdout, "taskr version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskr - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskr [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell         Interactive menu (default command)")
	fmt.Fprintln(w, "  ls [status]   List tasks, optionally filtered and sorted")
	fmt.Fprintln(w, "  check         Validate the task store")
	fmt.Fprintln(w, "  tui           Browse tasks in a terminal UI")
	fmt.Fprintln(w, "  config        Show effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (pending|completed)")
	fmt.Fprintln(w, "  -sort")
	fmt.Fprintln(w, "        Sort by due date")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
}
