package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cory-johannsen/attackroll/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// scriptedSrc replays die faces in order. Each entry is the face value (1-based).
type scriptedSrc struct {
	faces []int
	pos   int
}

func (s *scriptedSrc) Intn(n int) int {
	if s.pos >= len(s.faces) {
		panic("scriptedSrc exhausted")
	}
	v := s.faces[s.pos]
	s.pos++
	return (v - 1) % n
}

// TestRollResult_Total verifies the postcondition: Total() == sum(Dice) + Modifier.
func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6",
		Dice:       []int{4, 5},
		Modifier:   3,
	}
	assert.Equal(t, 12, r.Total(), "Total() must equal sum(Dice)+Modifier")
}

// TestRollResult_String verifies the audit string contains expression, dice, and total.
func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6",
		Dice:       []int{4, 5},
		Modifier:   3,
	}
	assert.Equal(t, "2d6 → [4 5] +3 = 12", r.String(), "String() must match exact format")
}

// TestRollResult_String_PanicsOnEmptyExpression verifies that String() enforces
// its precondition and panics when Expression is empty.
func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}, Modifier: 0}
	assert.Panics(t, func() { _ = r.String() })
}

func TestRollResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dice_ := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "dice")
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")

		r := dice.RollResult{Expression: "Nd20", Dice: dice_, Modifier: modifier}

		expected := modifier
		for _, d := range dice_ {
			expected += d
		}
		assert.Equal(rt, expected, r.Total())
		assert.Contains(rt, r.String(), fmt.Sprintf("%d", expected))
	})
}

// TestCryptoSource_Intn_InRange verifies every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 500; i++ {
		n := i%99 + 1
		require.Equal(t, a.Intn(n), b.Intn(n), "draw %d", i)
	}
}

func TestSeededSource_DifferentSeedsDiverge(t *testing.T) {
	a := dice.NewSeededSource(1)
	b := dice.NewSeededSource(2)
	var same int
	for i := 0; i < 100; i++ {
		if a.Intn(1000) == b.Intn(1000) {
			same++
		}
	}
	assert.Less(t, same, 100)
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(7).Intn(0) })
}

func TestD20_Range(t *testing.T) {
	src := dice.NewSeededSource(3)
	for i := 0; i < 1000; i++ {
		v := dice.D20(src)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 20)
	}
}

func TestBonus_Bounds(t *testing.T) {
	b := dice.Bonus{Amount: 4}
	assert.Equal(t, 4, b.Min())
	assert.Equal(t, 4, b.Max())
	// A bonus never draws from the source.
	assert.Equal(t, 4, b.Value(&scriptedSrc{}))
	assert.Equal(t, "4", b.String())
}

func TestDiceThrow_Roll_UsesSourceInOrder(t *testing.T) {
	src := &scriptedSrc{faces: []int{3, 5}}
	r := dice.DiceThrow{Count: 2, Faces: 6}.Roll(src)
	assert.Equal(t, "2d6", r.Expression)
	assert.Equal(t, []int{3, 5}, r.Dice)
	assert.Equal(t, 8, r.Total())
}

func TestDiceThrow_Reroll_RedrawsOnce(t *testing.T) {
	// First die: 1 is rerolled into 1 again and kept.
	// Second die: 2 is rerolled into 6.
	// Third die: 4 stands.
	src := &scriptedSrc{faces: []int{1, 1, 2, 6, 4}}
	d := dice.DiceThrow{Count: 3, Faces: 6, Reroll: []int{1, 2}}
	r := d.Roll(src)
	assert.Equal(t, []int{1, 6, 4}, r.Dice)
	assert.Equal(t, 5, src.pos, "every draw must be consumed")
}

func TestDiceThrow_Property_ValueWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 30).Draw(rt, "count")
		faces := rapid.SampledFrom(dice.ValidFaces()).Draw(rt, "faces")
		seed := rapid.Uint64().Draw(rt, "seed")
		reroll := rapid.SliceOfN(rapid.IntRange(1, faces), 0, 3).Draw(rt, "reroll")

		d := dice.DiceThrow{Count: count, Faces: faces, Reroll: reroll}
		assert.Equal(rt, count, d.Min())
		assert.Equal(rt, count*faces, d.Max())

		src := dice.NewSeededSource(seed)
		for i := 0; i < 20; i++ {
			v := d.Value(src)
			assert.GreaterOrEqual(rt, v, d.Min())
			assert.LessOrEqual(rt, v, d.Max())
		}
	})
}

func TestParseTerm_Valid(t *testing.T) {
	tests := []struct {
		token string
		want  dice.Term
	}{
		{"4", dice.Bonus{Amount: 4}},
		{"12", dice.Bonus{Amount: 12}},
		{"1d4", dice.DiceThrow{Count: 1, Faces: 4}},
		{"2d6", dice.DiceThrow{Count: 2, Faces: 6}},
		{"1d8", dice.DiceThrow{Count: 1, Faces: 8}},
		{"3d10", dice.DiceThrow{Count: 3, Faces: 10}},
		{"1d12", dice.DiceThrow{Count: 1, Faces: 12}},
		{"10d20", dice.DiceThrow{Count: 10, Faces: 20}},
		{"1d100", dice.DiceThrow{Count: 1, Faces: 100}},
	}
	for _, tc := range tests {
		got, err := dice.ParseTerm(tc.token)
		require.NoError(t, err, "token %q", tc.token)
		assert.Equal(t, tc.want, got, "token %q", tc.token)
	}
}

func TestParseTerm_Invalid(t *testing.T) {
	for _, token := range []string{
		"", "0", "0d6", "1d7", "1d0", "d6", "1d", "06", "01d6", "1D6",
		"1d6 ", " 1d6", "1d6A", "-3", "+3", "1d6+3", "2x6", "1d1000",
		"99999999999999999999999", "999999999999999999d100", "999999999999999999d6",
		"10001d6", "1000001",
	} {
		_, err := dice.ParseTerm(token)
		require.Error(t, err, "token %q", token)

		var invalid *dice.InvalidFormulaError
		require.ErrorAs(t, err, &invalid, "token %q", token)
		assert.Equal(t, token, invalid.Token)
		assert.Contains(t, err.Error(), fmt.Sprintf("%q", token))
	}
}

func TestParseTerm_Limits(t *testing.T) {
	term, err := dice.ParseTerm(fmt.Sprintf("%dd100", dice.MaxDiceCount))
	require.NoError(t, err)
	assert.Equal(t, dice.MaxDiceCount*100, term.Max())
	v := term.Value(dice.NewSeededSource(1))
	assert.GreaterOrEqual(t, v, term.Min())
	assert.LessOrEqual(t, v, term.Max())

	term, err = dice.ParseTerm(fmt.Sprintf("%d", dice.MaxBonus))
	require.NoError(t, err)
	assert.Equal(t, dice.MaxBonus, term.Max())
}

func TestParseTerm_Property_ValidDice(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 1000).Draw(rt, "count")
		faces := rapid.SampledFrom(dice.ValidFaces()).Draw(rt, "faces")

		term, err := dice.ParseTerm(fmt.Sprintf("%dd%d", count, faces))
		require.NoError(rt, err)
		assert.Equal(rt, count, term.Min())
		assert.Equal(rt, count*faces, term.Max())
	})
}

func TestParseTerm_Property_UnsupportedFaces(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 100).Draw(rt, "count")
		faces := rapid.IntRange(0, 200).
			Filter(func(f int) bool {
				for _, v := range dice.ValidFaces() {
					if v == f {
						return false
					}
				}
				return true
			}).
			Draw(rt, "faces")

		_, err := dice.ParseTerm(fmt.Sprintf("%dd%d", count, faces))
		var invalid *dice.InvalidFormulaError
		assert.ErrorAs(rt, err, &invalid)
	})
}

func TestParseTerm_Property_NeverPanics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		token := rapid.StringMatching(`[0-9dD+ A-Z]{0,8}`).Draw(rt, "token")
		term, err := dice.ParseTerm(token)
		if err == nil {
			assert.False(rt, strings.ContainsAny(token, "D+ A"), "token %q", token)
			assert.LessOrEqual(rt, term.Min(), term.Max())
		}
	})
}

func TestValidFaces_ReturnsCopy(t *testing.T) {
	f := dice.ValidFaces()
	f[0] = 999
	assert.Equal(t, []int{4, 6, 8, 10, 12, 20, 100}, dice.ValidFaces())
}
