// Package moderation censors configured terms in message bodies
// before they are persisted or broadcast. Matching runs over a
// normalized view of the text (case, accents and common character
// substitutions collapsed) so spaced or leet-speak variants are
// caught, while the replacement preserves the original spacing.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Moderator struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
}

// textMapping pairs the normalized runes with the index each came
// from in the original string.
type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewModerator builds the Aho-Corasick automaton from the
// normalized forms of the given terms.
func NewModerator(terms []string, censoredChar rune) (*Moderator, error) {
	patterns := make([][]rune, 0, len(terms))
	for _, term := range terms {
		if n := normalizeRunes([]rune(term)); len(n) > 0 {
			patterns = append(patterns, n)
		}
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, censoredChar: censoredChar}, nil
}

// Censor replaces every matched span with the censor rune and
// returns the matched (normalized) terms.
func (m *Moderator) Censor(original string) (string, []string) {
	mapping := m.normalize(original)
	if len(mapping.normalized) == 0 {
		return original, nil
	}

	spans := m.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	found := make([]string, 0, len(spans))
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)
		if normStart < 0 || normEnd > len(mapping.origIdx) {
			continue
		}
		found = append(found, string(span.Word))

		origStart := mapping.origIdx[normStart]
		origEnd := mapping.origIdx[normEnd-1] + 1
		for i := origStart; i < origEnd; i++ {
			origRunes[i] = m.censoredChar
		}
	}
	return string(origRunes), found
}

// normalize lowercases, strips accents, collapses substitutions and
// drops separators, remembering where each kept rune came from.
func (m *Moderator) normalize(original string) textMapping {
	origRunes := []rune(original)
	mapping := textMapping{
		normalized: make([]rune, 0, len(origRunes)),
		origIdx:    make([]int, 0, len(origRunes)),
	}
	for i, r := range origRunes {
		n, keep := normalizeRune(r)
		if !keep {
			continue
		}
		mapping.normalized = append(mapping.normalized, n)
		mapping.origIdx = append(mapping.origIdx, i)
	}
	return mapping
}

func normalizeRunes(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if n, keep := normalizeRune(r); keep {
			out = append(out, n)
		}
	}
	return out
}

// substitutions maps the usual evasion characters back to letters.
var substitutions = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'€': 'e',
	'!': 'i',
}

func normalizeRune(r rune) (rune, bool) {
	if sub, ok := substitutions[r]; ok {
		return sub, true
	}
	if !unicode.IsLetter(r) {
		return 0, false
	}
	folded := stripAccent(unicode.ToLower(r))
	return folded, true
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripAccent(r rune) rune {
	out, _, err := transform.String(accentStripper, string(r))
	if err != nil || out == "" {
		return r
	}
	return []rune(out)[0]
}
