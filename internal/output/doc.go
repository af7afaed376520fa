// Package output materializes transcription results to disk: a detailed
// segment transcript, a coalesced conversation, and a plain-text rendering,
// all under the recording's computed output directory.
package output
