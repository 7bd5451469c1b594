// Package normalize canonicalizes raw CRM record fields into comparable
// forms. All transforms are pure; absent input normalizes to the empty
// string, which the match strategies treat as "precondition not met",
// never as a wildcard.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name trims a person or company name and folds it to NFC so that
// composed and decomposed accents compare equal. An all-whitespace
// name normalizes to "" and is treated as absent.
func Name(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// Website strips a leading http:// or https:// scheme (case-insensitive),
// a leading www., and a single trailing slash.
func Website(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"):
		s = s[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		s = s[len("http://"):]
	}
	s = stripWWW(s)
	s = strings.TrimSuffix(s, "/")
	return s
}

// Domain strips a leading www. only.
func Domain(raw string) string {
	return stripWWW(strings.TrimSpace(raw))
}

func stripWWW(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "www.") {
		return s[len("www."):]
	}
	return s
}
