// Package finding defines the shared finding schema consumed by every
// reviewer and reporter in gavel.
//
// The constitutional checker, requirements reviewer, and design reviewer
// all emit the same Finding shape; reporters consume the union without
// knowing which reviewer produced a finding. Severity and kind vocabularies
// are closed sets, and finding IDs are deterministic category-prefixed
// counters assigned in document order.
package finding
