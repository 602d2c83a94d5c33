package attack_test

import (
	"strconv"
	"strings"
)

func itoa(n int) string { return strconv.Itoa(n) }

func join(pieces []string) string { return strings.Join(pieces, "+") }

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
