// Package filename cleans client-supplied file names for display.
package filename

import (
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLen applies when Sanitize is given no limit.
const DefaultMaxLen = 120

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)
	dashRuns    = regexp.MustCompile(`[-_]{2,}`)
)

// Base strips any directory part from a name sent by a browser. Some clients
// send full Windows paths, so both separators are honoured.
func Base(name string) string {
	b := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if b == "." || b == "/" {
		return ""
	}
	return b
}

// Sanitize reduces name to its base and replaces characters that are unsafe
// in a file name with dashes. Names longer than maxLen bytes are shortened
// from the stem so the extension survives.
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	s := Base(name)
	s = unsafeChars.ReplaceAllString(s, "-")
	s = strings.Join(strings.Fields(s), "-")
	s = dashRuns.ReplaceAllString(s, "-")
	// No hidden files, no trailing dots.
	s = strings.Trim(s, "-.")
	if len(s) <= maxLen {
		return s
	}

	ext := path.Ext(s)
	if len(ext) >= maxLen {
		ext = ""
	}
	stem := truncate(strings.TrimSuffix(s, ext), maxLen-len(ext))
	return strings.TrimRight(stem, "-.") + ext
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
