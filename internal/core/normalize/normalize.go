// Package normalize gives identifiers that cross the wire one canonical form:
// invalid UTF-8 and control characters (line breaks included) are dropped,
// the rest is NFC composed and trimmed
//
// Article ids, tag ids and nonces all go through ID before they are compared
// or stored, so "café" and "café" name the same article
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// chains hold state between calls, so each goroutine takes its own
var chains = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.ReplaceIllFormed(),
			runes.Remove(runes.Predicate(func(r rune) bool {
				return r == utf8.RuneError || unicode.IsControl(r)
			})),
			norm.NFC,
		)
	},
}

// ID returns the canonical form of an identifier; empty stays empty
func ID(s string) string {
	if s == "" {
		return ""
	}
	t := chains.Get().(transform.Transformer)
	out, _, err := transform.String(t, s)
	chains.Put(t)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// IDs maps ID over in, dropping entries that normalize to empty and repeats
func IDs(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		id := ID(s)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
