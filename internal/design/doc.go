// Package design reviews Markdown design documents.
//
// The document is the source of truth, not the source code: every
// dimension (SOLID, declared patterns, coupling and cohesion, error
// handling, security, C4 diagrams, ADR completeness) works on regex and
// keyword signals over the design prose. The pattern sets are contracts;
// each lives in a table so tests can pin every pattern to a named case.
package design
