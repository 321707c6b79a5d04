// Package config loads the desk watcher YAML configuration.
//
// Files may reference environment variables with ${VAR} syntax; they are
// expanded before parsing. Load parses the raw file; LoadAndValidate adds
// defaults and validation and is what the binary calls.
package config
