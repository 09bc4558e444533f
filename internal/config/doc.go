// Package config loads steering/project.yml: the per-project workflow
// configuration consumed by the governance engine.
//
// Two schema versions exist on disk. Version 1 predates package types and
// level configuration; Migrate upgrades a v1 file in place, inferring the
// package type from path heuristics and preserving unknown keys.
package config
