package match

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhase means the caller's phase tracking is out of sync with the engine.
	ErrInvalidPhase  = errors.New("invalid phase for operation")
	ErrInvalidConfig = errors.New("invalid match configuration")
)

// TurnResult is the outcome of resolving three darts against a score.
type TurnResult struct {
	Total       int
	NewScore    int
	Bust        bool
	Win         bool
	DartsThrown int
}

// ResolveTurn applies the bust and win rules for one visit. It does not
// validate the darts; malformed input is the caller's responsibility.
func ResolveTurn(preScore int, throws [3]Dart, mode FinishMode) TurnResult {
	var res TurnResult
	for _, d := range throws {
		res.Total += d.Points()
		if d.State != DartEmpty {
			res.DartsThrown++
		}
	}
	res.NewScore = preScore - res.Total

	if mode == FinishSimple {
		res.Bust = res.NewScore < 0
	} else {
		res.Bust = res.NewScore < 0 || res.NewScore == 1
	}

	if res.NewScore != 0 || res.Bust {
		return res
	}
	if mode == FinishSimple {
		res.Win = true
		return res
	}

	// Double-out: the last dart that actually scored decides. Checking out on
	// anything else busts, otherwise the player would be stuck on zero.
	for i := len(throws) - 1; i >= 0; i-- {
		d := throws[i]
		if d.State == DartScored && d.Value > 0 {
			res.Win = d.finishesDouble()
			break
		}
	}
	res.Bust = !res.Win
	return res
}

// ApplyTurn resolves the active player's visit and returns the next state.
// A bust leaves the score unchanged; a win finishes the leg or the match.
func ApplyTurn(s MatchState, throws [3]Dart) (MatchState, error) {
	if s.Phase != PhasePlaying {
		return s, fmt.Errorf("%w: apply turn in phase %q", ErrInvalidPhase, s.Phase)
	}
	active, ok := s.ActivePlayer()
	if !ok {
		return s, fmt.Errorf("%w: no active player at index %d", ErrInvalidPhase, s.ActivePlayerIndex)
	}

	res := ResolveTurn(active.CurrentScore, throws, s.FinishMode)

	turn := TurnHistory{
		Details:        throws,
		Total:          res.Total,
		ScoreAfter:     res.NewScore,
		WasBust:        res.Bust,
		IsWinningRound: res.Win,
		DartsThrown:    res.DartsThrown,
		LegNumber:      s.CurrentLeg,
	}
	for i, d := range throws {
		turn.Darts[i] = d.Points()
	}
	if res.Bust {
		turn.ScoreAfter = active.CurrentScore
	}

	next := s.Clone()
	p := &next.Players[s.ActivePlayerIndex]
	p.CurrentScore = turn.ScoreAfter
	p.History = append(p.History, turn)

	if !res.Win {
		next.ActivePlayerIndex = (s.ActivePlayerIndex + 1) % len(next.Players)
		return next, nil
	}

	p.LegsWon++
	if next.TotalLegs == 1 || p.LegsWon >= next.LegsToWin() {
		next.Phase = PhaseFinished
		next.Winner = p.ID
		next.LegWinner = ""
		return next, nil
	}
	next.Phase = PhaseLegFinished
	next.LegWinner = p.ID
	return next, nil
}
