// Package config loads and validates quizdb configuration.
//
// Configuration comes from a TOML file with sensible defaults for every
// field, so a missing file is not an error. The data-tree base path may also
// be supplied through the QUIZDB_BASE_PATH environment variable, which takes
// precedence over the file.
package config
