// Gavel is a governance and review CLI for specification-driven projects.
//
// It validates source trees against a constitutional rule book, runs
// structured requirements and design reviews, applies correction
// instructions back to documents, and manages rollback checkpoints,
// emitting deterministic exit codes suitable for CI gating and git hooks.
//
// Usage:
//
//	gavel validate src/                  # check files against the constitution
//	gavel validate --staged --strict     # gate staged changes in a hook
//	gavel review requirements spec.md    # Fagan plus perspective-based review
//	gavel review design design.md        # SOLID, security, C4 and ADR review
//	gavel correct design.md --instructions fixes.json
//	gavel checkpoint create --level commit
//	gavel hook install                   # wire validation into pre-commit
//
// See https://github.com/gaveldev/gavel for full documentation.
package main
