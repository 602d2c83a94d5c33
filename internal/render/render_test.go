package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/attackroll/internal/game/attack"
	"github.com/cory-johannsen/attackroll/internal/game/trial"
	"github.com/cory-johannsen/attackroll/internal/render"
	"github.com/cory-johannsen/attackroll/internal/stats"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, render.Red+"x"+render.Reset, render.Colorize(render.Red, "x"))
}

func TestStripANSI(t *testing.T) {
	s := render.Colorize(render.Bold, "Critical") + " hit " + render.Colorize(render.Cyan, "###")
	assert.Equal(t, "Critical hit ###", render.StripANSI(s))
	assert.Equal(t, "plain", render.StripANSI("plain"))
}

func TestStripANSI_Property_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 |#+=-]{0,30}`).Draw(rt, "text")
		colored := render.Colorize(render.BrightGreen, text)
		assert.Equal(rt, text, render.StripANSI(colored))
		assert.Equal(rt, text, render.StripANSI(render.StripANSI(colored)))
	})
}

func TestRenderer_Resolution(t *testing.T) {
	res := attack.Resolution{
		Formula:        attack.MustParseAttack("1d8+2d6+4A"),
		AttackModifier: 5,
		AttackRoll:     12,
		DamageRoll:     17,
	}
	out := render.New(false).Resolution(res)

	assert.Equal(t, ""+
		"+----------------------+---------------------+\n"+
		"| Making an attack for | 1d8+2d6+4           |\n"+
		"+======================+=====================+\n"+
		"|          Attack type | Normal              |\n"+
		"|     Attack condition | Advantage           |\n"+
		"|          Attack roll | 12 + 5 = 17 vs AC   |\n"+
		"|          Damage roll | 17 points of damage |\n"+
		"+----------------------+---------------------+\n", out)
}

func TestRenderer_Resolution_ColorKeepsLayout(t *testing.T) {
	res := attack.Resolution{
		Formula:    attack.MustParseAttack("1d12+6"),
		AttackRoll: 20,
		DamageRoll: 30,
		Critical:   true,
	}
	plain := render.New(false).Resolution(res)
	colored := render.New(true).Resolution(res)
	assert.NotEqual(t, plain, colored)
	assert.Equal(t, plain, render.StripANSI(colored))
	assert.Contains(t, plain, "Critical")
}

func TestRenderer_Resolutions_Total(t *testing.T) {
	results := []attack.Resolution{
		{Formula: attack.MustParseAttack("1d6"), AttackRoll: 1, Failure: true},
		{Formula: attack.MustParseAttack("2d6"), AttackRoll: 10, DamageRoll: 7},
		{Formula: attack.MustParseAttack("3"), AttackRoll: 20, DamageRoll: 6, Critical: true},
	}
	out := render.New(false).Resolutions(results)
	assert.Equal(t, 3, strings.Count(out, "Making an attack for"))
	assert.Contains(t, out, "Failure")
	assert.True(t, strings.HasSuffix(out, "Total damage with these attacks: 13 points of damage\n"))
}

func TestRenderer_Distribution(t *testing.T) {
	d := trial.Distribution{0: 1, 5: 4, 10: 2}
	out := render.New(false).Distribution(d, 8)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Damage distribution over 7 throws", lines[0])
	assert.Equal(t, "   0 | ##       1", lines[1])
	assert.Equal(t, "   5 | ######## 4", lines[2])
	assert.Equal(t, "  10 | ####     2", lines[3])
	assert.Equal(t, "  min 0  max 10  mean 5.71  mode 5", lines[4])
}

func TestRenderer_Distribution_Empty(t *testing.T) {
	out := render.New(false).Distribution(trial.Distribution{}, 10)
	assert.Contains(t, out, "no throws recorded")
}

func TestRenderer_Distribution_Property_OneRowPerKey(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := trial.Distribution(rapid.MapOfN(rapid.IntRange(0, 200), rapid.IntRange(1, 5000), 1, 40).Draw(rt, "dist"))
		width := rapid.IntRange(1, 80).Draw(rt, "width")

		out := render.New(false).Distribution(d, width)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		assert.Len(rt, lines, len(d)+2)
		for _, l := range lines[1 : len(lines)-1] {
			bars := strings.Count(l, "#")
			assert.GreaterOrEqual(rt, bars, 1)
			assert.LessOrEqual(rt, bars, width)
		}
	})
}

func TestRenderer_RunsResult(t *testing.T) {
	res, err := stats.RunsTest([]int{0, 1, 1, 0, 1, 0, 0, 1, 1, 0}, 0.05)
	require.NoError(t, err)
	out := render.New(false).RunsResult(res)
	assert.Contains(t, out, "[0 1 1 0 1 0 0 1 1 0]")
	assert.Contains(t, out, "Z-statistic value")
	assert.Contains(t, out, "| Can we assume that the sample is random? | true")
	assert.NotContains(t, out, "=====")
}
