// Package config holds the immutable configuration surface of the pipeline:
// the country alias map, the set of aggregate (non-country) World Bank codes,
// the default top-k for statistical tables, the canonical unified-table
// column names, plus the ambient logging and server settings.
//
// Configuration is assembled in three layers: compiled-in defaults, an
// optional YAML file overlay, and EMISTAT_* environment variables. The loaded
// Config is passed explicitly into constructors; nothing reads it as ambient
// global state, so tests can run with alternate alias maps and code sets.
package config
