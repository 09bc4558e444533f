// Package checkpoint snapshots project files so a correction run can be
// rolled back. Snapshots are stored by value: the file contents, mode and
// mtime at capture time, not a reference to them, so a rollback restores
// exactly what was there even if the working tree has moved on. Paths that
// did not exist yet are captured as absent and removed on rollback.
package checkpoint
