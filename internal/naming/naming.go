package naming

import (
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EventIdentity is the title and date parsed from a structured recording stem.
type EventIdentity struct {
	Title string
	Date  time.Time
}

// minStemTokens is the token count of the shortest structured stem:
// two marker tokens, at least one title token, date, time.
const minStemTokens = 5

// nameReplacer strips path separators and other filesystem-unsafe characters
// from title tokens before they become directory names. Recording filenames
// are operator-controlled, so this is validation, not cosmetics.
var nameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// Stem returns the recording filename without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseEventIdentity parses a structured stem into an EventIdentity.
// Stems with fewer than five underscore-delimited tokens, or whose trailing
// tokens are not an 8-digit date and 6-digit time, yield ok=false.
func ParseEventIdentity(stem string) (EventIdentity, bool) {
	parts := strings.Split(stem, "_")
	if len(parts) < minStemTokens {
		return EventIdentity{}, false
	}

	dateToken := parts[len(parts)-2]
	timeToken := parts[len(parts)-1]
	if !allDigits(dateToken, 8) || !allDigits(timeToken, 6) {
		return EventIdentity{}, false
	}

	date, err := time.Parse("20060102", dateToken)
	if err != nil {
		return EventIdentity{}, false
	}

	title := strings.Join(parts[2:len(parts)-2], "_")
	if title == "" {
		return EventIdentity{}, false
	}

	return EventIdentity{Title: title, Date: date}, true
}

// OutputDirName computes the stable, filesystem-safe output directory name
// for a recording stem: "<title>_<YYYY-MM-DD>" when the stem matches the
// structured convention, otherwise the sanitized stem itself.
func OutputDirName(stem string) string {
	if identity, ok := ParseEventIdentity(stem); ok {
		return SanitizeName(identity.Title) + "_" + identity.Date.Format("2006-01-02")
	}
	return SanitizeName(stem)
}

// SanitizeName replaces filesystem-unsafe characters in a name destined for
// a directory entry. Empty results collapse to "untitled" so a hostile title
// can never escape the output tree or produce an empty path element.
func SanitizeName(name string) string {
	name = strings.TrimSpace(nameReplacer.Replace(strings.TrimSpace(name)))
	if strings.Trim(name, ". ") == "" {
		return "untitled"
	}
	return name
}

// DisplayTitle renders an event title for human-facing output: underscores
// become spaces and words are title-cased.
func DisplayTitle(title string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(title, "_", " "))
	if cleaned == "" {
		return ""
	}
	return cases.Title(language.Und).String(cleaned)
}

func allDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
