package batch

import "fmt"

// Summary aggregates the outcome of one batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// SuccessRate reports succeeded over attempted as a percentage. Skipped
// recordings do not count against the rate.
func (s Summary) SuccessRate() float64 {
	attempted := s.Succeeded + s.Failed
	if attempted == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(attempted) * 100
}

// String renders the one-line closing report.
func (s Summary) String() string {
	if s.Total == 0 {
		return "no recordings found"
	}
	return fmt.Sprintf("%d recordings: %d succeeded, %d failed, %d skipped (%.1f%% success)",
		s.Total, s.Succeeded, s.Failed, s.Skipped, s.SuccessRate())
}
