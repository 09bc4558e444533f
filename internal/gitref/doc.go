// Package gitref shells out to git for repository metadata and changed
// file lists. It is best effort: commands that fail outside a repository
// return errors the caller can downgrade to "no git context".
package gitref
