package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskr configuration file
# Values can be overridden by TASKR_* environment variables or CLI flags

# Task store (relative to the working directory, supports ~ and $VAR expansion).
# Files ending in .yaml or .yml are stored as YAML, anything else as JSON.
store_file = "tasks.json"

# Store backend: "file" or "sqlite"
backend = "file"

# Write the store to a temp file and rename it into place.
# When false the store is truncated and rewritten in place.
atomic_write = true

# Give up on the due date prompt after this many invalid answers (0 = never)
date_attempts = 0

# Logging (written to stderr)
log_level = "warn"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
