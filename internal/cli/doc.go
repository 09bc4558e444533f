// Package cli wires the cobra command tree. Command handlers translate
// between flags and the internal packages and own the process exit code:
// 0 clean, 1 violations or failed gate, 2 execution error. Execution
// errors are also persisted under storage/errors for later triage.
package cli
