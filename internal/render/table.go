package render

import (
	"strings"
)

// row is a right-aligned label and a left-aligned value.
type row struct {
	label string
	value string
}

// outline draws rows as a two-column outlined table. When header is non-nil
// it is drawn above a '=' separator.
func outline(header *row, rows []row) string {
	lw, vw := 0, 0
	all := rows
	if header != nil {
		all = append([]row{*header}, rows...)
	}
	for _, r := range all {
		lw = max(lw, visibleWidth(r.label))
		vw = max(vw, visibleWidth(r.value))
	}

	rule := func(c string) string {
		return "+" + strings.Repeat(c, lw+2) + "+" + strings.Repeat(c, vw+2) + "+\n"
	}
	line := func(r row, rightLabel bool) string {
		pad := strings.Repeat(" ", lw-visibleWidth(r.label))
		label := r.label + pad
		if rightLabel {
			label = pad + r.label
		}
		return "| " + label + " | " + r.value + strings.Repeat(" ", vw-visibleWidth(r.value)) + " |\n"
	}

	var b strings.Builder
	b.WriteString(rule("-"))
	if header != nil {
		b.WriteString(line(*header, false))
		b.WriteString(rule("="))
	}
	for _, r := range rows {
		b.WriteString(line(r, true))
	}
	b.WriteString(rule("-"))
	return b.String()
}
