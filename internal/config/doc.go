// Package config provides configuration management for the offline compiler.
//
// Configuration comes from three layers with increasing precedence:
// built-in defaults, the optional .euler-offline YAML file, and CLI flags.
// The resulting Config struct is passed through the application via
// dependency injection rather than global state.
//
// The package also owns problem selection parsing (ParseProblemRange) and
// the XDG directory conventions for the cache and fetch index.
package config
