// Package cache provides a file-based clean-file cache for validation runs.
//
// Entries are keyed by a SHA-256 hash of the validation mode, package type,
// and file content. An entry records only that the content passed with zero
// findings; verdicts with findings are never cached, so changed or violating
// files are always re-checked. Expired entries are skipped on read and
// removed during cache-clear operations.
//
// The default cache directory is $XDG_CACHE_HOME/gavel (or the OS-appropriate
// equivalent). The cache should be cleared after rule overrides change.
package cache
