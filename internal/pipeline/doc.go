// Package pipeline drives one recording through the fixed stage sequence:
// transcribe, align, diarize, label, segment into turns, materialize. Each
// stage transition is persisted to the outcome store before the stage runs,
// so an interrupted run leaves an accurate record of how far it got.
package pipeline
