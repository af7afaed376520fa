// Package preflight provides readiness checks for the filesystem paths and
// external tooling a batch run depends on. The run command executes RunAll
// before touching any recording so a doomed run fails in seconds, not after
// the first half-hour model invocation.
package preflight
