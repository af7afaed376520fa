// Package queue persists per-recording processing state and outcomes in
// SQLite. The batch driver records every recording it touches here, which
// gives reruns skip-completed semantics and the CLI a processing history.
package queue
