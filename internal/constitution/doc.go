// Package constitution implements the constitutional checker: a static,
// text-based scan of source files against the governance articles.
//
// The checker never parses source into an AST. It works on line counts,
// brace-counting function spans, and regex signals, which keeps it
// portable across languages. Each article's patterns live in one table
// (articles.go) so tests can pin every pattern to a named case.
package constitution
