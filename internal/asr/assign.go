package asr

// Assign labels each segment with the speaker whose diarized intervals
// overlap it the most. Segments no interval touches keep an empty Speaker.
// The input slices are not modified; a fresh segment slice is returned.
func Assign(segments []Segment, intervals []SpeakerInterval) []Segment {
	if len(segments) == 0 {
		return nil
	}

	out := make([]Segment, len(segments))
	copy(out, segments)
	if len(intervals) == 0 {
		return out
	}

	for i := range out {
		overlapBySpeaker := map[string]float64{}
		for _, interval := range intervals {
			if d := overlap(out[i].Start, out[i].End, interval.Start, interval.End); d > 0 {
				overlapBySpeaker[interval.Speaker] += d
			}
		}

		best, bestDur := "", 0.0
		for speaker, dur := range overlapBySpeaker {
			// Ties break toward the lexically smaller label so
			// assignment is deterministic across runs.
			if dur > bestDur || (dur == bestDur && best != "" && speaker < best) {
				best, bestDur = speaker, dur
			}
		}
		out[i].Speaker = best
	}

	return out
}

func overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}
