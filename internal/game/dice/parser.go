package dice

import (
	"fmt"
	"regexp"
	"strconv"
)

// termPattern accepts "N" or "NdF" with N >= 1 and F among the standard
// polyhedral dice.
var termPattern = regexp.MustCompile(`^([1-9][0-9]*)(?:d(4|6|8|10|12|20|100))?$`)

var validFaces = []int{4, 6, 8, 10, 12, 20, 100}

const (
	// MaxDiceCount is the largest N accepted in "NdF". It bounds both the
	// per-roll allocation and Max(), which stays far below math.MaxInt.
	MaxDiceCount = 10000
	// MaxBonus is the largest flat bonus accepted.
	MaxBonus = 1000000
)

// ValidFaces returns the recognized face counts in ascending order.
func ValidFaces() []int {
	out := make([]int, len(validFaces))
	copy(out, validFaces)
	return out
}

// InvalidFormulaError reports a token that does not match the term grammar.
type InvalidFormulaError struct {
	Token string
}

func (e *InvalidFormulaError) Error() string {
	return fmt.Sprintf("dice: invalid die throw or value %q", e.Token)
}

// ParseTerm parses a single formula token into a Bonus or a DiceThrow.
// Supported forms: "4", "2d6", "1d100". Counts above MaxDiceCount and
// bonuses above MaxBonus are rejected.
//
// Postcondition: Returns a Term, or an *InvalidFormulaError carrying token.
func ParseTerm(token string) (Term, error) {
	m := termPattern.FindStringSubmatch(token)
	if m == nil {
		return nil, &InvalidFormulaError{Token: token}
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Only reachable on overflow; the pattern guarantees digits.
		return nil, &InvalidFormulaError{Token: token}
	}

	if m[2] == "" {
		if n > MaxBonus {
			return nil, &InvalidFormulaError{Token: token}
		}
		return Bonus{Amount: n}, nil
	}
	if n > MaxDiceCount {
		return nil, &InvalidFormulaError{Token: token}
	}

	faces, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, &InvalidFormulaError{Token: token}
	}
	return DiceThrow{Count: n, Faces: faces}, nil
}
