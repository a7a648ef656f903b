package roster

import (
	"fmt"
	"strings"
)

// Pick is one chosen skill option for one character on one side of a match.
type Pick struct {
	Character string `json:"character"`
	Option    string `json:"option"`
}

// NormalizeSkillOption whitespace-cleans and upper-cases a skill option,
// so "s1" and " S1 " are the same pick.
func NormalizeSkillOption(raw string) string {
	return strings.ToUpper(CleanWhitespace(raw))
}

// Normalize returns p with a canonical character name and skill option.
func (p Pick) Normalize() Pick {
	return Pick{
		Character: NormalizeCharacterName(p.Character),
		Option:    NormalizeSkillOption(p.Option),
	}
}

// String renders the pick as "Name:Option", the form PickSetKey sorts.
func (p Pick) String() string {
	return p.Character + ":" + p.Option
}

// ParsePick splits a "Name:Option" string at its last colon and normalizes
// both halves.
func ParsePick(s string) (Pick, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return Pick{}, fmt.Errorf("pick %q: missing ':' between character and option", s)
	}
	p := Pick{Character: s[:i], Option: s[i+1:]}.Normalize()
	if p.Character == "" || p.Option == "" {
		return Pick{}, fmt.Errorf("pick %q: character and option are required", s)
	}
	return p, nil
}

// PickStrings renders picks in their "Name:Option" form.
func PickStrings(picks []Pick) []string {
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.String()
	}
	return out
}
