package attack

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/attackroll/internal/game/dice"
)

const (
	critRoll    = 20
	fumbleRoll  = 1
	critFactor  = 2
	labelNormal = "Normal"
)

// Options are the per-run settings applied to every resolution.
type Options struct {
	// AttackModifier is added to the d20 for display only.
	AttackModifier int
	// ForceCritical makes every attack roll a natural 20.
	ForceCritical bool
}

// Resolution is the outcome of one attack.
type Resolution struct {
	Formula        Formula
	AttackModifier int
	// AttackRoll is the kept d20 in [1, 20], before the modifier.
	AttackRoll int
	// DamageRoll is the damage dealt after critical adjustment; >= 0.
	DamageRoll int
	Critical   bool
	Failure    bool
}

// AttackTotal returns AttackRoll + AttackModifier, compared against AC.
func (r Resolution) AttackTotal() int {
	return r.AttackRoll + r.AttackModifier
}

// Type returns "Critical", "Failure" or "Normal".
func (r Resolution) Type() string {
	switch r.AttackRoll {
	case critRoll:
		return "Critical"
	case fumbleRoll:
		return "Failure"
	default:
		return labelNormal
	}
}

// Condition returns "Advantage", "Disadvantage" or "Normal".
func (r Resolution) Condition() string {
	switch {
	case r.Formula.Advantage:
		return "Advantage"
	case r.Formula.Disadvantage:
		return "Disadvantage"
	default:
		return labelNormal
	}
}

// Resolver rolls attacks against an injected Source and logs every
// resolution at debug level.
type Resolver struct {
	src    dice.Source
	logger *zap.Logger
}

// NewResolver creates a Resolver that draws from src and logs to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewResolver(src dice.Source, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{src: src, logger: logger}
}

// Logger returns the logger resolutions are written to.
func (r *Resolver) Logger() *zap.Logger {
	return r.logger
}

// Resolve performs one attack.
//
// Draw order is fixed: two d20s (always, whatever the mode), then each dice
// term in order. A natural 1 zeroes damage; a natural 20 doubles it.
//
// Precondition: f must come from ParseAttack.
// Postcondition: 1 <= AttackRoll <= 20 and DamageRoll >= 0.
func (r *Resolver) Resolve(f Formula, opts Options) Resolution {
	first := dice.D20(r.src)
	second := dice.D20(r.src)

	var attackRoll int
	switch {
	case opts.ForceCritical:
		attackRoll = critRoll
	case f.Advantage:
		attackRoll = max(first, second)
	case f.Disadvantage:
		attackRoll = min(first, second)
	default:
		attackRoll = first
	}

	rolls := make([]dice.RollResult, 0, len(f.Dice))
	damage := 0
	for _, d := range f.Dice {
		rr := d.Roll(r.src)
		rolls = append(rolls, rr)
		damage += rr.Total()
	}
	for _, b := range f.Bonuses {
		damage += b.Value(r.src)
	}

	res := Resolution{
		Formula:        f,
		AttackModifier: opts.AttackModifier,
		AttackRoll:     attackRoll,
	}
	switch attackRoll {
	case fumbleRoll:
		res.Failure = true
		damage = 0
	case critRoll:
		res.Critical = true
		damage *= critFactor
	}
	res.DamageRoll = damage

	if ce := r.logger.Check(zap.DebugLevel, "attack resolved"); ce != nil {
		audit := make([]string, len(rolls))
		for i, rr := range rolls {
			audit[i] = rr.String()
		}
		ce.Write(
			zap.String("expression", f.Raw),
			zap.Ints("d20", []int{first, second}),
			zap.Int("attack_roll", attackRoll),
			zap.Strings("dice", audit),
			zap.Int("damage", damage),
			zap.String("type", res.Type()),
			zap.String("condition", res.Condition()),
		)
	}
	return res
}
