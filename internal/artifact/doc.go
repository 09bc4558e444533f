// Package artifact loads the files the reviewers consume: a single file or
// a directory walk filtered by extension and exclusion globs, in sorted
// path order so downstream reports are diff-stable.
package artifact
