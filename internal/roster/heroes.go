package roster

import (
	"slices"
	"strings"
)

// DefaultSuggestLimit caps autocomplete results.
const DefaultSuggestLimit = 30

// heroes is the known Seven Knights Rebirth roster, sorted. Names outside
// the list are still accepted everywhere; the list only drives suggestions.
var heroes = func() []string {
	h := []string{
		"Ace", "Alice", "Aragon", "Ariel", "Aris", "Asura", "Ballista", "Bane",
		"Bi Dam", "Biscuit", "Black Rose", "Catty", "Chancellor", "Chloe",
		"Cleo", "Colt", "Daisy", "Dellons", "Eileene", "Espada", "Evan", "Fai",
		"Feng Yan", "Heavenia", "Hellenia", "Hokin", "Jane", "Jave", "Jin",
		"Joker", "Jupy", "Juri", "Karin", "Karma", "Karon", "Knox", "Kris",
		"Kyle", "Kyrielle", "Lania", "Leo", "Li", "Lina", "Lucy", "May",
		"Mercure", "Nia", "Noho", "Orkah", "Orly", "Pascal", "Platin",
		"Rachel", "Rahkun", "Rei", "Rin", "Rook", "Rosie", "Rudy", "Ruri",
		"Sarah", "Sera", "Shane", "Sieg", "Silvesta", "Snipper", "Soi",
		"Spike", "Sylvia", "Taka", "Teo", "Vanessa", "Velika", "Victoria",
		"Yeonhee", "Yu Shin", "Yui", "Yuri", "Irene", "Kagura",
	}
	slices.Sort(h)
	return h
}()

// Heroes returns a copy of the known roster in alphabetical order.
func Heroes() []string {
	return slices.Clone(heroes)
}

// Suggest returns autocomplete candidates for a partially typed name.
// Prefix matches come before substring matches; both keep roster order.
// A blank query returns the head of the roster. limit <= 0 means
// DefaultSuggestLimit.
func Suggest(query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	needle := strings.ToLower(CleanWhitespace(query))
	if needle == "" {
		return slices.Clone(heroes[:min(limit, len(heroes))])
	}

	var starts, contains []string
	for _, h := range heroes {
		lower := strings.ToLower(h)
		switch {
		case strings.HasPrefix(lower, needle):
			starts = append(starts, h)
		case strings.Contains(lower, needle):
			contains = append(contains, h)
		}
	}
	out := make([]string, 0, len(starts)+len(contains))
	out = append(out, starts...)
	out = append(out, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
