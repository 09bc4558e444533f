// Package correct applies reviewer-approved corrections to documents.
//
// Instructions reference findings by id through an index exported by the
// review that produced them. Accept and modify substitute the finding's
// verbatim evidence in the document (first occurrence); rejects are
// recorded, optionally with an ADR stub. Every applied substitution is
// re-applied unchanged to a sibling .ja.md translation when present.
package correct
