package roster

import (
	"slices"
	"testing"
)

func TestNormalizeCharacterName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Already canonical", "Vanessa", "Vanessa"},
		{"Lower case", "rudy", "Rudy"},
		{"Upper case", "EILEENE", "Eileene"},
		{"Surrounding whitespace", "  karin \t", "Karin"},
		{"Collapses inner whitespace", "black    rose", "Black Rose"},
		{"Title cases every word", "feng yan", "Feng Yan"},
		{"Alias short", "van", "Vanessa"},
		{"Alias mixed case", "VaNe", "Vanessa"},
		{"Alias with spaces", "  blk   rose ", "Black Rose"},
		{"Alias hyphenated", "yu-shin", "Yu Shin"},
		{"Alias misspelling", "yoonhee", "Yeonhee"},
		{"Alias ork", "ork", "Orkah"},
		{"Unknown name kept", "some new hero", "Some New Hero"},
		{"Empty", "", ""},
		{"Whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCharacterName(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeCharacterName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCharacterNameIdempotent(t *testing.T) {
	inputs := []string{
		"van", "Vanessa", "blk rose", "BLACKROSE", "yu-shin", "bi-dam",
		"  spike ", "mc donald", "x", "", "   ", "Ärger öl", "jean-luc",
	}
	for _, in := range inputs {
		once := NormalizeCharacterName(in)
		twice := NormalizeCharacterName(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestAliasConvergence(t *testing.T) {
	if NormalizeCharacterName("van") != NormalizeCharacterName("Vanessa") {
		t.Fatalf("van and Vanessa should normalize to the same name")
	}
	if NormalizeCharacterName("bidam") != NormalizeCharacterName("Bi Dam") {
		t.Fatalf("bidam and Bi Dam should normalize to the same name")
	}
}

func TestNormalizeTeam(t *testing.T) {
	got := NormalizeTeam([]string{"rudy", "", "van", "  eileene  "})
	want := []string{"Eileene", "Rudy", "Vanessa"}
	if !slices.Equal(got, want) {
		t.Fatalf("NormalizeTeam = %v, want %v", got, want)
	}

	if got := NormalizeTeam(nil); len(got) != 0 {
		t.Fatalf("NormalizeTeam(nil) = %v, want empty", got)
	}
}

func TestTeamKeyOrderInsensitive(t *testing.T) {
	a, b, c := "Orkah", "jave", "KARIN"
	k1 := TeamKey([]string{a, b, c})
	k2 := TeamKey([]string{c, a, b})
	k3 := TeamKey([]string{b, c, a})
	if k1 != k2 || k2 != k3 {
		t.Fatalf("team keys differ: %q %q %q", k1, k2, k3)
	}
	if k1 != "Jave|Karin|Orkah" {
		t.Fatalf("TeamKey = %q, want %q", k1, "Jave|Karin|Orkah")
	}
}

func TestPickSetKey(t *testing.T) {
	got := PickSetKey([]string{"Vanessa:S2", "Eileene:S1", "Rudy:S1"})
	want := "Eileene:S1 + Rudy:S1 + Vanessa:S2"
	if got != want {
		t.Fatalf("PickSetKey = %q, want %q", got, want)
	}

	in := []string{"b:S1", "a:S1"}
	_ = PickSetKey(in)
	if in[0] != "b:S1" {
		t.Fatalf("PickSetKey must not reorder its input")
	}

	if PickSetKey(nil) != "" {
		t.Fatalf("PickSetKey(nil) should be empty")
	}
}

func TestParsePick(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Pick
		wantErr bool
	}{
		{"Simple", "Vanessa:S1", Pick{"Vanessa", "S1"}, false},
		{"Normalizes both halves", " van : s2 ", Pick{"Vanessa", "S2"}, false},
		{"Missing colon", "Vanessa S1", Pick{}, true},
		{"Missing option", "Vanessa:", Pick{}, true},
		{"Missing character", ":S1", Pick{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePick(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePick(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePick(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	t.Run("Blank query returns head of roster", func(t *testing.T) {
		got := Suggest("", 3)
		want := []string{"Ace", "Alice", "Aragon"}
		if !slices.Equal(got, want) {
			t.Fatalf("Suggest = %v, want %v", got, want)
		}
	})

	t.Run("Prefix matches before substring matches", func(t *testing.T) {
		got := Suggest("ri", 0)
		if len(got) == 0 || got[0] != "Rin" {
			t.Fatalf("expected prefix match Rin first, got %v", got)
		}
		if !slices.Contains(got, "Aris") {
			t.Fatalf("expected substring match Aris in %v", got)
		}
		if slices.Index(got, "Aris") > slices.Index(got, "Ruri") {
			t.Fatalf("substring matches should keep roster order: %v", got)
		}
	})

	t.Run("No match", func(t *testing.T) {
		got := Suggest("zzz", 10)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("Limit applies", func(t *testing.T) {
		if got := Suggest("a", 2); len(got) != 2 {
			t.Fatalf("expected 2 suggestions, got %v", got)
		}
	})
}
