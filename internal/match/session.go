package match

import "time"

// Session pairs the current state with its undo history. It is what a
// caller keeps per match and what gets persisted as a snapshot.
type Session struct {
	State MatchState `json:"state"`
	Undo  UndoStack  `json:"undo"`
}

func NewSession() Session {
	return Session{State: NewGame()}
}

func (s Session) CanUndo() bool { return s.Undo.Len() > 0 }

func (s Session) Start(cfg Config, entrants []Entrant, now time.Time) (Session, error) {
	next, err := Start(s.State, cfg, entrants, now)
	if err != nil {
		return s, err
	}
	return Session{State: next}, nil
}

// Submit applies a turn and records the prior state for undo. A turn that
// ends a leg clears the history so a won leg cannot be taken back.
func (s Session) Submit(throws [3]Dart) (Session, error) {
	next, err := ApplyTurn(s.State, throws)
	if err != nil {
		return s, err
	}
	undo := s.Undo.Push(s.State)
	if next.Phase != PhasePlaying {
		undo = undo.Clear()
	}
	return Session{State: next, Undo: undo}, nil
}

func (s Session) NextLeg() (Session, error) {
	next, err := AdvanceLeg(s.State)
	if err != nil {
		return s, err
	}
	return Session{State: next}, nil
}

func (s Session) UndoTurn() Session {
	state, undo := Undo(s.State, s.Undo)
	return Session{State: state, Undo: undo}
}

func (s Session) Rematch(now time.Time) (Session, error) {
	next, err := Rematch(s.State, now)
	if err != nil {
		return s, err
	}
	return Session{State: next}, nil
}

func (s Session) NewGame() Session {
	return NewSession()
}
