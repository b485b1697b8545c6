package match

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDart reads the short notation used by score sheets: "T20", "D16",
// "S5" or "5", "Bull" or "25", "Bullseye" or "50", "M" or "0" for a miss
// and "-" or "" for a dart that was not thrown.
func ParseDart(s string) (Dart, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "-":
		return Dart{Multiplier: 1, State: DartEmpty}, nil
	case "m", "miss", "0":
		return Dart{Value: 0, Multiplier: 1, State: DartMiss}, nil
	case "bull", "25", "sb", "ob":
		return Dart{Value: Bull, Multiplier: 1, State: DartScored}, nil
	case "bullseye", "50", "db", "ib":
		return Dart{Value: Bullseye, Multiplier: 1, State: DartScored}, nil
	}

	mult := 1
	digits := s
	switch s[0] {
	case 'S', 's':
		digits = s[1:]
	case 'D', 'd':
		mult, digits = 2, s[1:]
	case 'T', 't':
		mult, digits = 3, s[1:]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > 20 {
		return Dart{}, fmt.Errorf("invalid dart %q", s)
	}
	return Dart{Value: n, Multiplier: mult, State: DartScored}, nil
}

// ParseVisit parses up to three darts; missing entries are not thrown.
func ParseVisit(notation []string) ([3]Dart, error) {
	var visit [3]Dart
	if len(notation) > 3 {
		return visit, fmt.Errorf("a visit has at most 3 darts, got %d", len(notation))
	}
	for i := range visit {
		visit[i] = Dart{Multiplier: 1, State: DartEmpty}
	}
	for i, n := range notation {
		d, err := ParseDart(n)
		if err != nil {
			return visit, err
		}
		visit[i] = d
	}
	return visit, nil
}

func (d Dart) String() string {
	switch {
	case d.State == DartEmpty:
		return "-"
	case d.State == DartMiss || d.Value == 0:
		return "M"
	case d.Value == Bull:
		return "Bull"
	case d.Value == Bullseye:
		return "Bullseye"
	case d.Multiplier == 2:
		return "D" + strconv.Itoa(d.Value)
	case d.Multiplier == 3:
		return "T" + strconv.Itoa(d.Value)
	}
	return "S" + strconv.Itoa(d.Value)
}
