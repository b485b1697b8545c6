// Package checkout suggests a sequence of darts that finishes a remaining
// score. Double-out routes come from a fixed table; simple-out routes are
// searched in a fixed priority order so the same score always gets the
// same hint.
package checkout

import (
	"strconv"
	"strings"
)

type Mode string

const (
	Simple Mode = "simple"
	Double Mode = "double"
)

const (
	MinScore = 1
	// MaxScore is the highest three-dart finish (T20 T20 Bull).
	MaxScore = 170
)

// Throw is one dart of a suggested route.
type Throw struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

type Suggestion []Throw

func (s Suggestion) String() string {
	labels := make([]string, len(s))
	for i, t := range s {
		labels[i] = t.Label
	}
	return strings.Join(labels, " ")
}

func (s Suggestion) Total() int {
	total := 0
	for _, t := range s {
		total += t.Points
	}
	return total
}

// Suggest returns a checkout route for score, or false when there is none.
func Suggest(score int, mode Mode) (Suggestion, bool) {
	if score < MinScore || score > MaxScore {
		return nil, false
	}
	if mode == Simple {
		return suggestSimple(score)
	}
	route, ok := doubleOut[score]
	if !ok {
		return nil, false
	}
	return parseRoute(route), true
}

// parseRoute reads a table entry. In double-out notation "Bull" is the
// 50-point finish.
func parseRoute(route string) Suggestion {
	fields := strings.Fields(route)
	out := make(Suggestion, 0, len(fields))
	for _, f := range fields {
		if f == "Bull" {
			out = append(out, Throw{Label: f, Points: 50})
			continue
		}
		n, _ := strconv.Atoi(f[1:])
		switch f[0] {
		case 'D':
			out = append(out, doubleThrow(n))
		case 'T':
			out = append(out, tripleThrow(n))
		default:
			out = append(out, singleThrow(n))
		}
	}
	return out
}

func singleThrow(n int) Throw { return Throw{Label: "S" + strconv.Itoa(n), Points: n} }
func doubleThrow(n int) Throw { return Throw{Label: "D" + strconv.Itoa(n), Points: 2 * n} }
func tripleThrow(n int) Throw { return Throw{Label: "T" + strconv.Itoa(n), Points: 3 * n} }

var (
	bullThrow     = Throw{Label: "Bull", Points: 25}
	bullseyeThrow = Throw{Label: "Bullseye", Points: 50}
)
