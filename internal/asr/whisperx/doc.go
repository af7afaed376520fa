// Package whisperx implements the speech model gateway by shelling out to
// the WhisperX toolchain through a stage runner. Each capability runs in
// its own process, so accelerator memory held by a stage's model is
// reclaimed when the process exits — before the next stage starts.
package whisperx
