package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// dateFormat is the folder name of a gallery date, e.g. 20240623
var dateFormat = regexp.MustCompile(`^\d{8}$`)

// naturalLess compares strings in a way that treats numbers as numbers rather than characters
// For example: "file2" < "file10" when using naturalLess
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}
		if i >= len(s1) || j >= len(s2) {
			break
		}

		if isDigit(s1[i]) && isDigit(s2[j]) {
			start1, start2 := i, j
			for i < len(s1) && isDigit(s1[i]) {
				i++
			}
			for j < len(s2) && isDigit(s2[j]) {
				j++
			}
			n1, _ := strconv.Atoi(s1[start1:i])
			n2, _ := strconv.Atoi(s2[start2:j])
			if n1 != n2 {
				return n1 < n2
			}
			continue
		}

		if s1[i] != s2[j] {
			return s1[i] < s2[j]
		}
		i++
		j++
	}

	return len(s1)-i < len(s2)-j
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// photoMatcher recognises photo file names: an optional letter prefix, a number and
// one of the configured extensions, like "12.webp" or "A3.webp".
type photoMatcher struct {
	pattern *regexp.Regexp
}

func newPhotoMatcher(extensions []string) photoMatcher {
	quoted := make([]string, len(extensions))
	for i, ext := range extensions {
		quoted[i] = regexp.QuoteMeta(ext)
	}
	return photoMatcher{
		pattern: regexp.MustCompile(`^([A-Za-z]*)(\d+)\.(?i:` + strings.Join(quoted, "|") + `)$`),
	}
}

// number returns the numeric part of a photo file name without leading zeros.
// It stays a digit string so arbitrarily long numbers still order correctly.
func (m photoMatcher) number(name string) (string, bool) {
	match := m.pattern.FindStringSubmatch(name)
	if match == nil {
		return "", false
	}
	digits := strings.TrimLeft(match[2], "0")
	if digits == "" {
		digits = "0"
	}
	return digits, true
}

// numberLess orders digit strings without leading zeros by value
func numberLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// sortPhotos keeps only photo file names and orders them by their number.
// Equal numbers ("1.webp", "A1.webp") fall back to natural order.
func (m photoMatcher) sortPhotos(names []string) []string {
	type entry struct {
		name   string
		number string
	}

	entries := make([]entry, 0, len(names))
	for _, name := range names {
		if n, ok := m.number(name); ok {
			entries = append(entries, entry{name: name, number: n})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].number != entries[j].number {
			return numberLess(entries[i].number, entries[j].number)
		}
		return naturalLess(entries[i].name, entries[j].name)
	})

	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.name
	}
	return sorted
}

// formatDate turns 20240623 into 2024-06-23
func formatDate(date string) string {
	if !dateFormat.MatchString(date) {
		return date
	}
	return date[0:4] + "-" + date[4:6] + "-" + date[6:8]
}
