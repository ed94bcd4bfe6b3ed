package format

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"unicode/utf8"
)

// maxURLDisplay is the display length a shortened URL is cut to.
const maxURLDisplay = 60

// Escape replaces the five HTML-significant characters in s with their
// entity forms. Every document value placed into markup goes through
// here; this is the sole escaping boundary.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Display renders a decoded JSON value as display text. Nulls become the
// empty string and numbers print in plain notation, so absent or odd
// metadata degrades to something readable instead of "<nil>" or 1e+09.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Bytes formats a byte count the way the scan service does: whole bytes
// below 1 KB, one decimal once the value scales into KB, MB, or GB. GB
// is the terminal unit, so anything past it still reads as GB.
func Bytes(n int64) string {
	f := float64(n)
	if f < 1024 {
		return strconv.FormatInt(int64(f), 10) + " B"
	}
	f /= 1024
	for _, unit := range []string{"KB", "MB"} {
		if f < 1024 {
			return fmt.Sprintf("%.1f %s", f, unit)
		}
		f /= 1024
	}
	return fmt.Sprintf("%.1f GB", f)
}

// Truncate cuts s to at most max runes, appending an ellipsis when
// anything was removed.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "…"
}

// ShortenURL reduces u to a host-plus-path display form truncated to 60
// characters. Values without a host (data URIs, file URLs, plain
// garbage) fall back to truncating the raw string, so it never fails.
func ShortenURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Hostname() == "" {
		return Truncate(u, maxURLDisplay)
	}
	return Truncate(parsed.Hostname()+parsed.Path, maxURLDisplay)
}
