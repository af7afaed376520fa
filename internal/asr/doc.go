// Package asr defines the capability boundary over the speech models:
// transcription, alignment, diarization, and speaker assignment. The
// pipeline depends only on the Gateway interface; how inference happens
// (subprocess, remote call, native binding) is an implementation concern.
package asr
