// Package match implements the X01 turn-resolution state machine: score
// updates, bust and win detection, and leg/match progression.
//
// Every transition is a pure function from one MatchState to a new one. The
// input state is never modified, which keeps undo a plain list of snapshots.
package match

import "time"

type GameType int

const (
	Game301 GameType = 301
	Game501 GameType = 501
)

type FinishMode string

const (
	FinishSimple FinishMode = "simple"
	FinishDouble FinishMode = "double"
)

type Phase string

const (
	PhaseSetup       Phase = "setup"
	PhasePlaying     Phase = "playing"
	PhaseLegFinished Phase = "legFinished"
	PhaseFinished    Phase = "finished"
)

// DartState tells an entered miss apart from a dart that was never thrown.
type DartState string

const (
	DartEmpty  DartState = "empty"
	DartMiss   DartState = "miss"
	DartScored DartState = "scored"
)

const (
	Bull     = 25
	Bullseye = 50
)

type Dart struct {
	Value      int       `json:"value"`
	Multiplier int       `json:"multiplier"`
	State      DartState `json:"state"`
}

// Points returns the dart's score. Bull and bullseye ignore the multiplier.
func (d Dart) Points() int {
	if d.State != DartScored {
		return 0
	}
	if d.Value == Bull || d.Value == Bullseye {
		return d.Value
	}
	return d.Value * d.Multiplier
}

// finishesDouble reports whether the dart is a valid double-out finisher.
func (d Dart) finishesDouble() bool {
	return d.Value == Bullseye || (d.Multiplier == 2 && d.Value != Bull)
}

type TurnHistory struct {
	Darts          [3]int  `json:"darts"`
	Details        [3]Dart `json:"dartDetails"`
	Total          int     `json:"total"`
	ScoreAfter     int     `json:"scoreAfter"`
	WasBust        bool    `json:"wasBust"`
	IsWinningRound bool    `json:"isWinningRound"`
	DartsThrown    int     `json:"dartsActuallyThrown"`
	LegNumber      int     `json:"legNumber"`
}

type Player struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	StartingScore int           `json:"startingScore"`
	CurrentScore  int           `json:"currentScore"`
	History       []TurnHistory `json:"history"`
	LegsWon       int           `json:"legsWon"`
}

// MatchState is one immutable snapshot of a match.
type MatchState struct {
	Phase             Phase      `json:"phase"`
	GameType          GameType   `json:"gameType"`
	FinishMode        FinishMode `json:"finishMode"`
	TotalLegs         int        `json:"totalLegs"`
	CurrentLeg        int        `json:"currentLeg"`
	Players           []Player   `json:"players"`
	ActivePlayerIndex int        `json:"activePlayerIndex"`
	LegWinner         string     `json:"legWinner,omitempty"` // player ID
	Winner            string     `json:"winner,omitempty"`    // player ID
	StartTime         time.Time  `json:"startTime"`
}

// ActivePlayer returns the player to act, or false when there are no players.
func (s MatchState) ActivePlayer() (Player, bool) {
	if s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.ActivePlayerIndex], true
}

func (s MatchState) LegWinnerPlayer() (Player, bool) {
	return s.playerByID(s.LegWinner)
}

func (s MatchState) WinnerPlayer() (Player, bool) {
	return s.playerByID(s.Winner)
}

func (s MatchState) playerByID(id string) (Player, bool) {
	if id == "" {
		return Player{}, false
	}
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// LegsToWin is the number of legs that decides the match.
func (s MatchState) LegsToWin() int {
	return (s.TotalLegs + 1) / 2
}

// Clone returns a deep copy sharing no slices with s.
func (s MatchState) Clone() MatchState {
	out := s
	if s.Players != nil {
		out.Players = make([]Player, len(s.Players))
		for i, p := range s.Players {
			out.Players[i] = p.clone()
		}
	}
	return out
}

func (p Player) clone() Player {
	out := p
	if p.History != nil {
		out.History = make([]TurnHistory, len(p.History))
		copy(out.History, p.History)
	}
	return out
}
