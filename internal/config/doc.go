// Package config loads, normalizes, and validates flacsmith configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FLACSMITH_VERIFY_TOOL. The Config type centralizes every knob the CLI and
// engine need: library roots, the state directory holding the resume cache
// and journals, worker counts, and the external verifier command.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
