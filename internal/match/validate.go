package match

import (
	"errors"
	"fmt"
	"slices"

	"github.com/albapepper/gvg-tracker/internal/roster"
)

var (
	ErrIncompleteTeam  = errors.New("team must have exactly 3 named characters")
	ErrDuplicateMember = errors.New("team lists the same character twice")
	ErrTooManyPicks    = errors.New("pick set has more than 3 picks")
	ErrPickNotOnTeam   = errors.New("pick references a character not on that team")
	ErrInvalidResult   = errors.New("result must be WIN or LOSS")
	ErrMissingID       = errors.New("record id is required")
	ErrInvalidPick     = errors.New("pick is malformed")
)

// Validate checks a normalized record. Errors wrap one of the sentinels
// above and name the offending side.
func Validate(rec Record) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	if err := validateSide("attacker", rec.Attackers, rec.AttackerPicks); err != nil {
		return err
	}
	if err := validateSide("defender", rec.Defenders, rec.DefenderPicks); err != nil {
		return err
	}
	if rec.Result != Win && rec.Result != Loss {
		return fmt.Errorf("%w: got %q", ErrInvalidResult, rec.Result)
	}
	return nil
}

func validateSide(side string, team []string, picks []roster.Pick) error {
	if len(team) != roster.TeamSize {
		return fmt.Errorf("%s team: %w (got %d)", side, ErrIncompleteTeam, len(team))
	}
	sorted := slices.Clone(team)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != len(team) {
		return fmt.Errorf("%s team: %w", side, ErrDuplicateMember)
	}
	if len(picks) > MaxPicks {
		return fmt.Errorf("%s picks: %w (got %d)", side, ErrTooManyPicks, len(picks))
	}
	for _, p := range picks {
		if !slices.Contains(team, p.Character) {
			return fmt.Errorf("%s picks: %w: %s", side, ErrPickNotOnTeam, p.Character)
		}
	}
	return nil
}
