package dice

import (
	"fmt"
	"slices"
)

// Term is a single value-producing unit of an attack formula.
//
// Implementations are Bonus and DiceThrow; the unexported method keeps the set
// closed so callers can switch on the concrete type exhaustively.
type Term interface {
	// Value returns a fresh sample drawn from src. Never cached.
	Value(src Source) int
	// Min returns the smallest value Value can produce.
	Min() int
	// Max returns the largest value Value can produce.
	Max() int

	term()
}

// Bonus is a flat value added to damage.
type Bonus struct {
	Amount int
}

// Value returns the bonus amount; src is not consumed.
func (b Bonus) Value(_ Source) int { return b.Amount }

// Min returns the bonus amount.
func (b Bonus) Min() int { return b.Amount }

// Max returns the bonus amount.
func (b Bonus) Max() int { return b.Amount }

// String returns the bonus as written in a formula.
func (b Bonus) String() string { return fmt.Sprintf("%d", b.Amount) }

func (Bonus) term() {}

// DiceThrow is Count dice of Faces sides. A draw that lands in Reroll is
// redrawn exactly once and the second draw is kept.
type DiceThrow struct {
	Count  int
	Faces  int
	Reroll []int
}

// Roll draws every die from src and returns the audit record.
//
// Precondition: Count >= 1 and Faces >= 1; src must be non-nil.
// Postcondition: len(result.Dice) == Count; every die is in [1, Faces].
func (d DiceThrow) Roll(src Source) RollResult {
	rolled := make([]int, d.Count)
	for i := range rolled {
		v := src.Intn(d.Faces) + 1
		if slices.Contains(d.Reroll, v) {
			v = src.Intn(d.Faces) + 1
		}
		rolled[i] = v
	}
	return RollResult{Expression: d.String(), Dice: rolled}
}

// Value returns the sum of a fresh Roll.
//
// Postcondition: Min() <= return value <= Max().
func (d DiceThrow) Value(src Source) int {
	return d.Roll(src).Total()
}

// Min returns Count.
func (d DiceThrow) Min() int { return d.Count }

// Max returns Count*Faces.
func (d DiceThrow) Max() int { return d.Count * d.Faces }

// String returns the throw in NdF notation.
func (d DiceThrow) String() string { return fmt.Sprintf("%dd%d", d.Count, d.Faces) }

func (DiceThrow) term() {}
