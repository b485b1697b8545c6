package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxPlayers = 8
	// UndoDepth bounds the number of turns that can be taken back.
	UndoDepth = 10
)

// Config holds the settings chosen on the setup screen.
type Config struct {
	GameType   GameType   `json:"gameType"`
	FinishMode FinishMode `json:"finishMode"`
	TotalLegs  int        `json:"totalLegs"`
}

// Entrant is a player joining a match.
type Entrant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Validate checks the configuration against the supported variants.
func (c Config) Validate() error {
	switch c.GameType {
	case Game301, Game501:
	default:
		return fmt.Errorf("%w: game type %d", ErrInvalidConfig, c.GameType)
	}
	switch c.FinishMode {
	case FinishSimple, FinishDouble:
	default:
		return fmt.Errorf("%w: finish mode %q", ErrInvalidConfig, c.FinishMode)
	}
	switch c.TotalLegs {
	case 1, 3, 5, 7, 9:
	default:
		return fmt.Errorf("%w: total legs must be 1, 3, 5, 7 or 9, got %d", ErrInvalidConfig, c.TotalLegs)
	}
	return nil
}

// NewGame returns an empty match waiting in the setup phase.
func NewGame() MatchState {
	return MatchState{
		Phase:      PhaseSetup,
		GameType:   Game501,
		FinishMode: FinishDouble,
		TotalLegs:  1,
		CurrentLeg: 1,
		Players:    []Player{},
	}
}

// Start moves a match from setup to playing with the given players.
func Start(s MatchState, cfg Config, entrants []Entrant, now time.Time) (MatchState, error) {
	if s.Phase != PhaseSetup {
		return s, fmt.Errorf("%w: start in phase %q", ErrInvalidPhase, s.Phase)
	}
	if err := cfg.Validate(); err != nil {
		return s, err
	}
	if len(entrants) == 0 || len(entrants) > MaxPlayers {
		return s, fmt.Errorf("%w: need 1 to %d players, got %d", ErrInvalidConfig, MaxPlayers, len(entrants))
	}

	seen := make(map[string]bool, len(entrants))
	players := make([]Player, 0, len(entrants))
	for _, e := range entrants {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return s, fmt.Errorf("%w: player name is required", ErrInvalidConfig)
		}
		if e.ID == "" || seen[e.ID] {
			return s, fmt.Errorf("%w: player id %q is missing or duplicated", ErrInvalidConfig, e.ID)
		}
		seen[e.ID] = true
		players = append(players, Player{
			ID:            e.ID,
			Name:          name,
			StartingScore: int(cfg.GameType),
			CurrentScore:  int(cfg.GameType),
			History:       []TurnHistory{},
		})
	}

	return MatchState{
		Phase:      PhasePlaying,
		GameType:   cfg.GameType,
		FinishMode: cfg.FinishMode,
		TotalLegs:  cfg.TotalLegs,
		CurrentLeg: 1,
		Players:    players,
		StartTime:  now,
	}, nil
}

// AdvanceLeg starts the next leg after a leg win. History and legs won carry over.
func AdvanceLeg(s MatchState) (MatchState, error) {
	if s.Phase != PhaseLegFinished {
		return s, fmt.Errorf("%w: advance leg in phase %q", ErrInvalidPhase, s.Phase)
	}
	next := s.Clone()
	next.Phase = PhasePlaying
	next.CurrentLeg++
	next.ActivePlayerIndex = 0
	next.LegWinner = ""
	for i := range next.Players {
		next.Players[i].CurrentScore = next.Players[i].StartingScore
	}
	return next, nil
}

// Rematch replays the match with the same players from scratch.
func Rematch(s MatchState, now time.Time) (MatchState, error) {
	if s.Phase == PhaseSetup {
		return s, fmt.Errorf("%w: rematch in phase %q", ErrInvalidPhase, s.Phase)
	}
	next := s.Clone()
	next.Phase = PhasePlaying
	next.CurrentLeg = 1
	next.ActivePlayerIndex = 0
	next.Winner = ""
	next.LegWinner = ""
	next.StartTime = now
	for i := range next.Players {
		p := &next.Players[i]
		p.CurrentScore = p.StartingScore
		p.History = []TurnHistory{}
		p.LegsWon = 0
	}
	return next, nil
}

// Restore fills in fields missing from snapshots written by older versions.
func (s MatchState) Restore(now time.Time) MatchState {
	next := s.Clone()
	if next.FinishMode == "" {
		next.FinishMode = FinishDouble
	}
	if next.TotalLegs == 0 {
		next.TotalLegs = 1
	}
	if next.CurrentLeg == 0 {
		next.CurrentLeg = 1
	}
	if next.StartTime.IsZero() {
		next.StartTime = now
	}
	if next.Players == nil {
		next.Players = []Player{}
	}
	for i := range next.Players {
		if next.Players[i].History == nil {
			next.Players[i].History = []TurnHistory{}
		}
	}
	return next
}
