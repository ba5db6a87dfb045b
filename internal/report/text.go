package report

import "unicode/utf8"

// MaxErrorRunes caps error text in a report. Telegram rejects messages over
// 4096 characters, and a transport error can embed a whole response body.
const MaxErrorRunes = 1024

// TruncRunes returns s truncated to at most n runes, with "…" appended when
// anything was cut.
func TruncRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	cut := 0
	for i, r := range s {
		count++
		if count == n {
			cut = i + utf8.RuneLen(r)
			continue
		}
		if count > n {
			return s[:cut] + "…"
		}
	}
	return s
}
