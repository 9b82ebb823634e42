// Package shared holds code used across packages without belonging to any
// one of them. Today that is only testutil: a capturing slog handler and
// the nutrition CSV fixtures.
package shared
