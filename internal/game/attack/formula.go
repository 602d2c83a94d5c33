// Package attack parses attack formulas and resolves them into hits,
// criticals and failures with a damage total.
package attack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/attackroll/internal/game/dice"
)

const (
	advantageMarker    = 'A'
	disadvantageMarker = 'D'
)

var (
	// ErrEmptyAttack indicates an attack token with no terms.
	ErrEmptyAttack = errors.New("attack: formula has no terms")
	// ErrNoAttacks indicates that no attack tokens were supplied.
	ErrNoAttacks = errors.New("attack: at least one attack must be provided")
)

// Formula is a parsed attack token.
//
// Invariant: immutable once returned by ParseAttack; WithReroll copies.
type Formula struct {
	// Raw is the token with any advantage/disadvantage markers removed.
	Raw          string
	Dice         []dice.DiceThrow
	Bonuses      []dice.Bonus
	Advantage    bool
	Disadvantage bool
}

// Terms returns every term in draw order: dice first, then bonuses.
func (f Formula) Terms() []dice.Term {
	out := make([]dice.Term, 0, len(f.Dice)+len(f.Bonuses))
	for _, d := range f.Dice {
		out = append(out, d)
	}
	for _, b := range f.Bonuses {
		out = append(out, b)
	}
	return out
}

// WithReroll returns a copy of f in which every dice term rerolls draws
// landing in values once.
//
// Postcondition: f is unchanged.
func (f Formula) WithReroll(values []int) Formula {
	out := f
	out.Dice = make([]dice.DiceThrow, len(f.Dice))
	for i, d := range f.Dice {
		d.Reroll = append([]int(nil), values...)
		out.Dice[i] = d
	}
	out.Bonuses = append([]dice.Bonus(nil), f.Bonuses...)
	return out
}

// ParseAttack parses a full attack token such as "1d8+2d6+4", "1d12+6A" or
// "8d8+2d4+3D".
//
// A trailing 'A' sets Advantage and is stripped; the remainder is then checked
// for a trailing 'D', which sets Disadvantage. "…DA" therefore sets both flags,
// while "…AD" leaves the 'A' on the last term and fails to parse. Markers are
// only recognized as the very last character, so "1d6A " fails on "1d6A".
//
// Postcondition: Returns a Formula with at least one term, ErrEmptyAttack,
// or a *dice.InvalidFormulaError naming the offending term.
func ParseAttack(token string) (Formula, error) {
	var f Formula
	expr := token

	if n := len(expr); n > 0 && expr[n-1] == advantageMarker {
		f.Advantage = true
		expr = expr[:n-1]
	}
	if n := len(expr); n > 0 && expr[n-1] == disadvantageMarker {
		f.Disadvantage = true
		expr = expr[:n-1]
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Formula{}, fmt.Errorf("parsing attack %q: %w", token, ErrEmptyAttack)
	}
	f.Raw = expr

	for _, piece := range strings.Split(expr, "+") {
		term, err := dice.ParseTerm(strings.TrimSpace(piece))
		if err != nil {
			return Formula{}, fmt.Errorf("parsing attack %q: %w", token, err)
		}
		switch t := term.(type) {
		case dice.DiceThrow:
			f.Dice = append(f.Dice, t)
		case dice.Bonus:
			f.Bonuses = append(f.Bonuses, t)
		}
	}
	return f, nil
}

// ParseAttacks parses every token, stopping at the first error.
//
// Postcondition: Returns one Formula per token in order, ErrNoAttacks when
// tokens is empty, or the first parse error.
func ParseAttacks(tokens []string) ([]Formula, error) {
	if len(tokens) == 0 {
		return nil, ErrNoAttacks
	}
	out := make([]Formula, 0, len(tokens))
	for _, tok := range tokens {
		f, err := ParseAttack(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// MustParseAttack parses token and panics on error. Useful in tests and for
// package-level presets.
//
// Precondition: token must be a valid attack formula.
func MustParseAttack(token string) Formula {
	f, err := ParseAttack(token)
	if err != nil {
		panic("attack: MustParseAttack failed for " + token + ": " + err.Error())
	}
	return f
}

// MinDamage returns the smallest non-critical damage f can deal.
func MinDamage(f Formula) int {
	total := 0
	for _, t := range f.Terms() {
		total += t.Min()
	}
	return total
}

// MaxDamage returns the largest non-critical damage f can deal.
func MaxDamage(f Formula) int {
	total := 0
	for _, t := range f.Terms() {
		total += t.Max()
	}
	return total
}
