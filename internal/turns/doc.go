// Package turns coalesces speaker-labeled transcript segments into
// conversational turns: consecutive segments from the same mapped speaker
// merge into one turn, in time order.
package turns
