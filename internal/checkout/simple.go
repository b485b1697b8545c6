package checkout

// suggestSimple searches for a simple-out route. The branch order is the
// player-visible contract: the first match wins even where a shorter route
// exists, and a few scores between 106 and 169 deliberately get no hint.
func suggestSimple(score int) (Suggestion, bool) {
	if last, ok := lastDart(score); ok {
		return Suggestion{last}, true
	}

	for first := 20; first >= 1; first-- {
		if last, ok := lastDart(score - first); ok {
			return Suggestion{singleThrow(first), last}, true
		}
	}
	if score > 25 {
		if last, ok := lastDart(score - 25); ok {
			return Suggestion{bullThrow, last}, true
		}
	}
	if score > 50 {
		if last, ok := lastDart(score - 50); ok {
			return Suggestion{bullseyeThrow, last}, true
		}
	}

	for d := 20; d >= 1; d-- {
		rest := score - 2*d
		if rest == 0 {
			return Suggestion{doubleThrow(d)}, true
		}
		if last, ok := lastDart(rest); ok {
			return Suggestion{doubleThrow(d), last}, true
		}
	}

	for t := 20; t >= 1; t-- {
		rest := score - 3*t
		if rest == 0 {
			return Suggestion{tripleThrow(t)}, true
		}
		if last, ok := lastDart(rest); ok {
			return Suggestion{tripleThrow(t), last}, true
		}
	}

	for first := 20; first >= 1; first-- {
		for second := 20; second >= 1; second-- {
			if last, ok := lastDart(score - first - second); ok {
				return Suggestion{singleThrow(first), singleThrow(second), last}, true
			}
		}
	}

	// Triple plus two singles only looks at T10 and up, and never ends on
	// the bullseye.
	for t := 20; t >= 10; t-- {
		for s := 20; s >= 1; s-- {
			rest := score - 3*t - s
			switch {
			case rest == 0:
				return Suggestion{tripleThrow(t), singleThrow(s)}, true
			case rest >= 1 && rest <= 20:
				return Suggestion{tripleThrow(t), singleThrow(s), singleThrow(rest)}, true
			case rest == 25:
				return Suggestion{tripleThrow(t), singleThrow(s), bullThrow}, true
			}
		}
	}

	if score >= 120 {
		return suggestFromT20(score)
	}
	return nil, false
}

// suggestFromT20 covers high scores by opening with T20.
func suggestFromT20(score int) (Suggestion, bool) {
	t20 := tripleThrow(20)
	rest := score - 60
	if rest >= 60 {
		last := rest - 60
		switch {
		case last >= 1 && last <= 20:
			return Suggestion{t20, t20, singleThrow(last)}, true
		case last == 0:
			return Suggestion{t20, t20}, true
		case last <= 60 && last%3 == 0:
			return Suggestion{t20, t20, tripleThrow(last / 3)}, true
		}
	}
	for t := 20; t >= 1; t-- {
		last := rest - 3*t
		if last == 0 {
			return Suggestion{t20, tripleThrow(t)}, true
		}
		if l, ok := lastDart(last); ok {
			return Suggestion{t20, tripleThrow(t), l}, true
		}
	}
	return nil, false
}

// lastDart returns the single-segment dart worth exactly n: S1 to S20, the
// bull or the bullseye.
func lastDart(n int) (Throw, bool) {
	switch {
	case n >= 1 && n <= 20:
		return singleThrow(n), true
	case n == 25:
		return bullThrow, true
	case n == 50:
		return bullseyeThrow, true
	}
	return Throw{}, false
}
