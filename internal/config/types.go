package config

// Default values.
const (
	DefaultStoreFile    = "tasks.json"
	DefaultBackend      = "file"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultDateAttempts = 0
	DefaultAtomicWrite  = true
)

// Config holds the full configuration for taskr.
type Config struct {
	// Storage
	StoreFile   string `toml:"store_file"`
	Backend     string `toml:"backend"` // "file" (JSON or YAML by extension) or "sqlite"
	AtomicWrite bool   `toml:"atomic_write"`

	// Prompting. Zero means the due date prompt never gives up.
	DateAttempts int `toml:"date_attempts"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StoreFile = DefaultStoreFile
	cfg.Backend = DefaultBackend
	cfg.AtomicWrite = DefaultAtomicWrite
	cfg.DateAttempts = DefaultDateAttempts
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
