// Package roster canonicalizes character names and builds the
// order-insensitive keys used to group teams and skill picks.
//
// Everything here is a pure function over strings. Normalization has to run
// at every boundary (record creation, import, query) so two differently typed
// references to the same hero always collapse to one identity.
package roster

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key separators. They differ so a rendered pick set never reads like a team.
const (
	TeamSeparator = "|"
	PickSeparator = " + "
)

// TeamSize is the number of characters on each side of a match.
const TeamSize = 3

// aliases maps lower-cased shorthand and common misspellings to the
// canonical hero name. Loaded once, never mutated.
var aliases = map[string]string{
	"vane":      "Vanessa",
	"van":       "Vanessa",
	"blk rose":  "Black Rose",
	"bk rose":   "Black Rose",
	"blackrose": "Black Rose",
	"yeonhee":   "Yeonhee",
	"yoonhee":   "Yeonhee",
	"yu-shin":   "Yu Shin",
	"yushin":    "Yu Shin",
	"bi-dam":    "Bi Dam",
	"bidam":     "Bi Dam",
	"fengyan":   "Feng Yan",
	"silvesta":  "Silvesta",
	"ork":       "Orkah",
}

// CleanWhitespace collapses every run of whitespace to a single space and
// trims both ends.
func CleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase lower-cases s and upper-cases the first rune of each
// space-separated word. s must already be whitespace-clean.
func titleCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// NormalizeCharacterName returns the canonical display form of a hero name,
// or "" when raw is blank. It never fails.
func NormalizeCharacterName(raw string) string {
	t := CleanWhitespace(raw)
	if t == "" {
		return ""
	}
	t = titleCase(t)
	if canonical, ok := aliases[strings.ToLower(t)]; ok {
		return canonical
	}
	return t
}

// NormalizeTeam normalizes every name, drops blanks and sorts the result in
// byte order. The result can be shorter than names.
func NormalizeTeam(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if c := NormalizeCharacterName(n); c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

// TeamKey is the grouping identity of a team: its normalized names joined
// with TeamSeparator. Input order does not matter.
func TeamKey(names []string) string {
	return strings.Join(NormalizeTeam(names), TeamSeparator)
}

// PickSetKey sorts "name:option" strings and joins them with PickSeparator.
// It does not normalize; callers pass picks that were normalized at
// creation time.
func PickSetKey(picks []string) string {
	sorted := slices.Clone(picks)
	slices.Sort(sorted)
	return strings.Join(sorted, PickSeparator)
}
