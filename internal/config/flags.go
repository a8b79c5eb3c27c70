package config

import "flag"

// parseFlags defines the global CLI flags on fs and parses args.
// Flag defaults are the values already in cfg, so unset flags change nothing.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskr", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.StoreFile, "file", cfg.StoreFile, "Path to task store")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Store backend (file|sqlite)")
	fs.BoolVar(&cfg.AtomicWrite, "atomic-write", cfg.AtomicWrite, "Write the store via temp file and rename")

	// Prompting
	fs.IntVar(&cfg.DateAttempts, "date-attempts", cfg.DateAttempts, "Give up after this many invalid due dates (0 = never)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")

	return fs.Parse(args)
}
