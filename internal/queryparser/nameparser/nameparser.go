// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package nameparser decomposes author-name query values (e.g.
// "Smith, J.K." or "John Smith") into last name, first-name list, initials,
// and suffix, the way the emitter needs to build name-variation queries. It
// is a fresh, self-contained implementation grounded on the call-site
// contract described in visitor_utils.py's name-variation helpers —
// inspire_utils.name.ParsedName itself is not present in the retrieval pack
// (see DESIGN.md).
package nameparser

import "strings"

// ParsedName is the decomposed shape of an author name.
type ParsedName struct {
	LastNames  []string
	FirstNames []string
	Suffix     string
}

// IsOnlyInitials reports whether every first-name token is a bare initial
// (a single letter, optionally followed by a dot), mirroring
// _name_variation_has_only_initials.
func (n ParsedName) IsOnlyInitials() bool {
	if len(n.FirstNames) == 0 {
		return false
	}
	for _, f := range n.FirstNames {
		if !isInitial(f) {
			return false
		}
	}
	return true
}

// HasFullNames reports whether at least one first-name token is longer than
// a bare initial, mirroring author_name_contains_fullnames.
func (n ParsedName) HasFullNames() bool {
	for _, f := range n.FirstNames {
		if !isInitial(f) {
			return true
		}
	}
	return false
}

func isInitial(token string) bool {
	token = strings.TrimSuffix(token, ".")
	return len([]rune(token)) == 1
}

// Initials returns the initial letter of every first-name token, upper-cased
// and dotted, e.g. ["John", "Michael"] -> ["J.", "M."].
func (n ParsedName) Initials() []string {
	out := make([]string, 0, len(n.FirstNames))
	for _, f := range n.FirstNames {
		f = strings.TrimSuffix(f, ".")
		if f == "" {
			continue
		}
		r := []rune(f)
		out = append(out, strings.ToUpper(string(r[0]))+".")
	}
	return out
}

const cjkMiddleDot = "·"

// Parser parses free-text author-name query values. Exposed as an
// interface, with DefaultParser as the production implementation, since
// there is no real external name-parsing service backing this in tests.
type Parser interface {
	Parse(name string) (ParsedName, error)
}

// DefaultParser is the built-in Parser implementation.
type DefaultParser struct{}

// Parse recognizes two shapes: "Last, First Middle Suffix" (comma-separated,
// SPIRES-preferred) and "First Middle Last" (bare, Invenio-style). Suffixes
// (Jr, Sr, roman numerals) are recognized only in the comma-separated form,
// matching how the original grammar's author queries are almost always
// entered in "Last, First" order.
func (DefaultParser) Parse(name string) (ParsedName, error) {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, cjkMiddleDot, " ")

	if idx := strings.Index(name, ","); idx >= 0 {
		last := strings.TrimSpace(name[:idx])
		rest := strings.Fields(name[idx+1:])

		var suffix string
		if n := len(rest); n > 0 && isSuffix(rest[n-1]) {
			suffix = rest[n-1]
			rest = rest[:n-1]
		}

		return ParsedName{
			LastNames:  splitWords(last),
			FirstNames: splitInitials(rest),
			Suffix:     suffix,
		}, nil
	}

	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ParsedName{}, nil
	}
	if len(fields) == 1 {
		return ParsedName{LastNames: fields}, nil
	}

	last := fields[len(fields)-1]
	first := fields[:len(fields)-1]
	return ParsedName{
		LastNames:  []string{last},
		FirstNames: splitInitials(first),
	}, nil
}

func splitWords(s string) []string {
	return strings.Fields(s)
}

// splitInitials further splits a dotted initials run like "J.K." into
// ["J.", "K."], mirroring retokenize_first_names.
func splitInitials(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if isDottedInitialsRun(tok) {
			for _, r := range strings.Split(strings.TrimSuffix(tok, "."), ".") {
				if r == "" {
					continue
				}
				out = append(out, r+".")
			}
			continue
		}
		out = append(out, tok)
	}
	return out
}

// isDottedInitialsRun reports whether tok looks like "J.K." or "J.K" — more
// than one dot-separated single-letter group.
func isDottedInitialsRun(tok string) bool {
	if !strings.Contains(tok, ".") {
		return false
	}
	parts := strings.Split(strings.TrimSuffix(tok, "."), ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if len([]rune(p)) != 1 {
			return false
		}
	}
	return true
}

var suffixes = map[string]struct{}{
	"jr": {}, "jr.": {}, "sr": {}, "sr.": {},
	"ii": {}, "iii": {}, "iv": {}, "v": {},
}

func isSuffix(tok string) bool {
	_, ok := suffixes[strings.ToLower(tok)]
	return ok
}
