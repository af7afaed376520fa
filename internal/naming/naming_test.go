package naming

import (
	"testing"
	"time"
)

func TestParseEventIdentity(t *testing.T) {
	cases := []struct {
		name      string
		stem      string
		wantTitle string
		wantDate  string
		wantOK    bool
	}{
		{
			name:      "structured stem",
			stem:      "AO_REC_WeeklySync_20240115_093000",
			wantTitle: "WeeklySync",
			wantDate:  "2024-01-15",
			wantOK:    true,
		},
		{
			name:      "multi token title",
			stem:      "audio_only_Quarterly_Planning_Review_20231202_140000",
			wantTitle: "Quarterly_Planning_Review",
			wantDate:  "2023-12-02",
			wantOK:    true,
		},
		{
			name:   "too few tokens",
			stem:   "meeting_20240115_093000",
			wantOK: false,
		},
		{
			name:   "date token not numeric",
			stem:   "AO_REC_WeeklySync_2024x115_093000",
			wantOK: false,
		},
		{
			name:   "time token wrong length",
			stem:   "AO_REC_WeeklySync_20240115_0930",
			wantOK: false,
		},
		{
			name:   "calendar-invalid date",
			stem:   "AO_REC_WeeklySync_20241332_093000",
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity, ok := ParseEventIdentity(tc.stem)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if identity.Title != tc.wantTitle {
				t.Fatalf("title = %q, want %q", identity.Title, tc.wantTitle)
			}
			if got := identity.Date.Format("2006-01-02"); got != tc.wantDate {
				t.Fatalf("date = %s, want %s", got, tc.wantDate)
			}
		})
	}
}

func TestParseEventIdentityDeterministic(t *testing.T) {
	stem := "AO_REC_WeeklySync_20240115_093000"
	first, ok := ParseEventIdentity(stem)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	for i := 0; i < 3; i++ {
		again, ok := ParseEventIdentity(stem)
		if !ok || again.Title != first.Title || !again.Date.Equal(first.Date) {
			t.Fatalf("parse not deterministic on iteration %d: %+v vs %+v", i, again, first)
		}
	}
}

func TestOutputDirName(t *testing.T) {
	cases := []struct {
		stem string
		want string
	}{
		// Shortest structured form: markers, one title token, date, time.
		{"AO_REC_WeeklySync_20240115_093000", "WeeklySync_2024-01-15"},
		{"standalone-recording", "standalone-recording"},
		// Path separators in title tokens never reach the filesystem.
		{"AO_REC_bad/title_20240115_093000", "bad-title_2024-01-15"},
		{"AO_REC_bad/part_title_20240115_093000", "bad-part_title_2024-01-15"},
		// Too few tokens for the convention: fall back to the sanitized stem.
		{"meeting_20240115_093000", "meeting_20240115_093000"},
	}
	for _, tc := range cases {
		if got := OutputDirName(tc.stem); got != tc.want {
			t.Errorf("OutputDirName(%q) = %q, want %q", tc.stem, got, tc.want)
		}
		if again := OutputDirName(tc.stem); again != OutputDirName(tc.stem) {
			t.Errorf("OutputDirName(%q) unstable: %q vs %q", tc.stem, again, OutputDirName(tc.stem))
		}
	}
}

func TestSanitizeNameNeverEmpty(t *testing.T) {
	for _, input := range []string{"", "...", "???", "  "} {
		if got := SanitizeName(input); got != "untitled" {
			t.Errorf("SanitizeName(%q) = %q, want untitled", input, got)
		}
	}
}

func TestStem(t *testing.T) {
	if got := Stem("/data/audio/AO_REC_Sync_20240115_093000.wav"); got != "AO_REC_Sync_20240115_093000" {
		t.Fatalf("Stem = %q", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := DisplayTitle("quarterly_planning_review"); got != "Quarterly Planning Review" {
		t.Fatalf("DisplayTitle = %q", got)
	}
}

func TestParseEventIdentityDateValue(t *testing.T) {
	identity, ok := ParseEventIdentity("AO_REC_Sync_20240229_093000")
	if !ok {
		t.Fatal("leap day should parse")
	}
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if !identity.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", identity.Date, want)
	}
}
