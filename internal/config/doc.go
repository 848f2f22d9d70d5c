// Package config loads the application configuration from environment
// variables, command-line flags, and an optional JSON file, merging the
// sources in that order (last non-zero value wins) and applying documented
// defaults for every tunable the operator leaves unset.
//
// Secrets — the token signing key, the database DSN, and the hosted-AI API
// key — are never defaulted. The first two are required; a missing AI key
// switches the AI endpoints to the local heuristic strategy instead.
package config
