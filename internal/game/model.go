package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/merev/ds-darts-engine/internal/checkout"
	"github.com/merev/ds-darts-engine/internal/match"
	"github.com/merev/ds-darts-engine/internal/stats"
)

var ErrInvalidRequest = errors.New("invalid request")

// StartRequest mirrors the frontend setup screen.
type StartRequest struct {
	GameType   int      `json:"gameType"`
	FinishMode string   `json:"finishMode"`
	TotalLegs  int      `json:"totalLegs"`
	Players    []string `json:"players"` // display names, in throwing order
}

func (r StartRequest) config() match.Config {
	return match.Config{
		GameType:   match.GameType(r.GameType),
		FinishMode: match.FinishMode(r.FinishMode),
		TotalLegs:  r.TotalLegs,
	}
}

// TurnRequest is the body we expect on POST /api/games/{id}/turns. Either
// structured darts or score-sheet notation ("T20", "D16", "-") may be sent.
type TurnRequest struct {
	Darts    []match.Dart `json:"darts,omitempty"`
	Notation []string     `json:"notation,omitempty"`
}

// Visit validates the request and returns the three darts of the turn.
func (r TurnRequest) Visit() ([3]match.Dart, error) {
	if len(r.Darts) > 0 && len(r.Notation) > 0 {
		return [3]match.Dart{}, fmt.Errorf("%w: send darts or notation, not both", ErrInvalidRequest)
	}
	if len(r.Notation) > 0 {
		v, err := match.ParseVisit(r.Notation)
		if err != nil {
			return v, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		return v, nil
	}

	var v [3]match.Dart
	if len(r.Darts) > 3 {
		return v, fmt.Errorf("%w: a visit has at most 3 darts, got %d", ErrInvalidRequest, len(r.Darts))
	}
	for i := range v {
		v[i] = match.Dart{Multiplier: 1, State: match.DartEmpty}
	}
	for i, d := range r.Darts {
		if err := validateDart(d); err != nil {
			return v, fmt.Errorf("%w: dart %d: %v", ErrInvalidRequest, i+1, err)
		}
		if d.Multiplier == 0 {
			d.Multiplier = 1
		}
		v[i] = d
	}
	return v, nil
}

func validateDart(d match.Dart) error {
	switch d.State {
	case match.DartEmpty, match.DartMiss:
		return nil
	case match.DartScored:
	default:
		return fmt.Errorf("unknown state %q", d.State)
	}
	switch {
	case d.Value == match.Bull || d.Value == match.Bullseye:
		if d.Multiplier > 1 {
			return fmt.Errorf("bull cannot have multiplier %d", d.Multiplier)
		}
	case d.Value >= 0 && d.Value <= 20:
		if d.Multiplier < 0 || d.Multiplier > 3 {
			return fmt.Errorf("multiplier must be 1, 2 or 3, got %d", d.Multiplier)
		}
	default:
		return fmt.Errorf("value %d is not on the board", d.Value)
	}
	return nil
}

// CheckoutHint is the suggested finish for the player to throw next.
type CheckoutHint struct {
	PlayerID  string              `json:"playerId"`
	Remaining int                 `json:"remaining"`
	Route     string              `json:"route"`
	Darts     checkout.Suggestion `json:"darts"`
}

// GameView is what every game endpoint returns.
type GameView struct {
	ID        string           `json:"id"`
	State     match.MatchState `json:"state"`
	CanUndo   bool             `json:"canUndo"`
	Checkout  *CheckoutHint    `json:"checkout,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type GameSummary struct {
	ID         string    `json:"id"`
	Phase      string    `json:"phase"`
	GameType   int       `json:"gameType"`
	FinishMode string    `json:"finishMode"`
	TotalLegs  int       `json:"totalLegs"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type StatsView struct {
	ID        string              `json:"id"`
	Players   []stats.PlayerStats `json:"players"`
	ShareText string              `json:"shareText"`
}

type CheckoutView struct {
	Score int                 `json:"score"`
	Mode  string              `json:"mode"`
	Found bool                `json:"found"`
	Route string              `json:"route,omitempty"`
	Darts checkout.Suggestion `json:"darts,omitempty"`
}
