// Package column locates semantic columns among spreadsheet headers whose
// names vary in case, spacing and punctuation.
package column

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNotFound classifies a required column that no header matched.
var ErrNotFound = eris.New("required column not found")

// Canon lower-cases s and drops every rune that is not an ASCII letter or digit.
// "O*NET-SOC Code" → "onetsoccode", " Head Count " → "headcount".
func Canon(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Find returns the first header whose canonical form equals the canonical form
// of any variant. It fails with ErrNotFound naming the variants tried.
func Find(headers, variants []string) (string, error) {
	if h, ok := Lookup(headers, variants); ok {
		return h, nil
	}
	return "", eris.Wrapf(ErrNotFound, "tried %q", variants)
}

// Lookup is Find without the error: ok is false when nothing matches.
func Lookup(headers, variants []string) (string, bool) {
	want := canonSet(variants)
	for _, h := range headers {
		if _, hit := want[Canon(h)]; hit {
			return h, true
		}
	}
	return "", false
}

// Search tries an exact canonical match first (variants in order, headers in
// table order), then accepts a header whose canonical form contains a
// variant, so decorated headers like "Achievement (Score)" still resolve.
func Search(headers, variants []string) (string, bool) {
	canonHeaders := make([]string, len(headers))
	for i, h := range headers {
		canonHeaders[i] = Canon(h)
	}

	for _, v := range variants {
		cv := Canon(v)
		for i, ch := range canonHeaders {
			if ch == cv {
				return headers[i], true
			}
		}
	}

	for _, v := range variants {
		cv := Canon(v)
		if cv == "" {
			continue
		}
		for i, ch := range canonHeaders {
			if strings.Contains(ch, cv) {
				return headers[i], true
			}
		}
	}

	return "", false
}

// FindFragments returns the first header whose canonical form contains every
// fragment, e.g. FindFragments(h, "soc", "code") matches "Onet Soc Code (2019)".
func FindFragments(headers []string, fragments ...string) (string, bool) {
	for _, h := range headers {
		ch := Canon(h)
		all := true
		for _, f := range fragments {
			if !strings.Contains(ch, Canon(f)) {
				all = false
				break
			}
		}
		if all {
			return h, true
		}
	}
	return "", false
}

func canonSet(variants []string) map[string]struct{} {
	m := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		m[Canon(v)] = struct{}{}
	}
	return m
}
