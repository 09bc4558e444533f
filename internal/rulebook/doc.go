// Package rulebook holds the two-layer governance configuration: the global
// constitution-levels file and per-project overrides.
//
// Articles are the atomic unit of governance. Each article carries a rule
// level (critical, advisory, flexible) which deterministically maps to an
// enforcement mode (block, warn, configurable). Configurable settings
// resolve through a fixed precedence chain: project override, then
// package-type rule, then mode default, then global default.
//
// Missing configuration files are not an error; the hard-coded defaults
// apply. Malformed YAML surfaces a single wrapped configuration error.
package rulebook
