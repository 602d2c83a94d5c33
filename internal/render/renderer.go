package render

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/attackroll/internal/game/attack"
	"github.com/cory-johannsen/attackroll/internal/game/trial"
	"github.com/cory-johannsen/attackroll/internal/stats"
)

// Renderer turns results into terminal text, optionally with ANSI colors.
type Renderer struct {
	color bool
}

// New creates a Renderer. color enables ANSI escape codes.
func New(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) paint(code, text string) string {
	if !r.color {
		return text
	}
	return Colorize(code, text)
}

// Resolution formats one attack as an outlined table.
//
// Postcondition: the table contains the attack type, condition, attack roll
// line and damage line.
func (r *Renderer) Resolution(res attack.Resolution) string {
	typ := res.Type()
	switch {
	case res.Critical:
		typ = r.paint(BrightGreen, typ)
	case res.Failure:
		typ = r.paint(BrightRed, typ)
	}

	cond := res.Condition()
	switch {
	case res.Formula.Advantage:
		cond = r.paint(Green, cond)
	case res.Formula.Disadvantage:
		cond = r.paint(Yellow, cond)
	}

	header := row{label: "Making an attack for", value: r.paint(Bold, res.Formula.Raw)}
	return outline(&header, []row{
		{"Attack type", typ},
		{"Attack condition", cond},
		{"Attack roll", fmt.Sprintf("%d + %d = %d vs AC", res.AttackRoll, res.AttackModifier, res.AttackTotal())},
		{"Damage roll", fmt.Sprintf("%d points of damage", res.DamageRoll)},
	})
}

// Resolutions formats every resolution followed by the grand total line.
func (r *Renderer) Resolutions(results []attack.Resolution) string {
	var b strings.Builder
	total := 0
	for _, res := range results {
		b.WriteString(r.Resolution(res))
		total += res.DamageRoll
	}
	b.WriteString(r.Total(total))
	return b.String()
}

// Total formats the grand total line.
func (r *Renderer) Total(damage int) string {
	return fmt.Sprintf("Total damage with these attacks: %s points of damage\n",
		r.paint(BrightWhite, fmt.Sprintf("%d", damage)))
}

// Distribution formats d as a horizontal bar chart: one row per damage value
// in ascending order, bars scaled so the most frequent value spans width.
//
// Precondition: width >= 1.
func (r *Renderer) Distribution(d trial.Distribution, width int) string {
	var b strings.Builder
	b.WriteString(r.paint(BrightYellow, fmt.Sprintf("Damage distribution over %d throws", d.Total())))
	b.WriteString("\n")
	if len(d) == 0 {
		b.WriteString(r.paint(Dim, "  no throws recorded"))
		b.WriteString("\n")
		return b.String()
	}

	keys := d.Keys()
	peak := 0
	for _, k := range keys {
		peak = max(peak, d[k])
	}
	keyWidth := len(fmt.Sprintf("%d", keys[len(keys)-1]))
	keyWidth = max(keyWidth, len(fmt.Sprintf("%d", keys[0])))
	countWidth := len(fmt.Sprintf("%d", peak))

	for _, k := range keys {
		c := d[k]
		bar := max(1, c*width/peak)
		fmt.Fprintf(&b, "  %*d | %s%s %*d\n",
			keyWidth, k,
			r.paint(Cyan, strings.Repeat("#", bar)), strings.Repeat(" ", width-bar),
			countWidth, c)
	}
	fmt.Fprintf(&b, "  min %d  max %d  mean %.2f  mode %d\n",
		keys[0], keys[len(keys)-1], d.Mean(), d.Mode())
	return b.String()
}

// RunsResult formats a run test report as an outlined table.
func (r *Renderer) RunsResult(res stats.RunsResult) string {
	verdict := fmt.Sprintf("%t", res.Random)
	if res.Random {
		verdict = r.paint(Green, verdict)
	} else {
		verdict = r.paint(Red, verdict)
	}
	return outline(nil, []row{
		{"Values", fmt.Sprintf("%v", res.Values)},
		{"Runs", fmt.Sprintf("%d (expected %.4f)", res.Runs, res.ExpectedRuns)},
		{"Z-statistic value", fmt.Sprintf("%.6f", res.Z)},
		{"P-value", fmt.Sprintf("%.6f", res.PValue)},
		{"Significance level", fmt.Sprintf("%g", res.SignificanceLevel)},
		{"Can we assume that the sample is random?", verdict},
	})
}
