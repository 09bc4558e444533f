// Package gate evaluates quality gates: pure, deterministic pass/fail
// aggregates over a review's findings and metrics. Same inputs, same gate,
// byte for byte.
package gate
