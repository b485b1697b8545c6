package match

import "encoding/json"

// UndoStack holds up to UndoDepth pre-turn snapshots. It is a value type:
// Push and Pop return a new stack and leave the receiver untouched.
type UndoStack struct {
	snapshots []MatchState
}

func (u UndoStack) Len() int { return len(u.snapshots) }

// Push records s, dropping the oldest snapshot once the stack is full.
func (u UndoStack) Push(s MatchState) UndoStack {
	keep := u.snapshots
	if len(keep) >= UndoDepth {
		keep = keep[len(keep)-UndoDepth+1:]
	}
	out := make([]MatchState, 0, len(keep)+1)
	out = append(out, keep...)
	out = append(out, s.Clone())
	return UndoStack{snapshots: out}
}

// Pop returns the most recent snapshot and the remaining stack.
func (u UndoStack) Pop() (MatchState, UndoStack, bool) {
	if len(u.snapshots) == 0 {
		return MatchState{}, u, false
	}
	last := len(u.snapshots) - 1
	rest := make([]MatchState, last)
	copy(rest, u.snapshots[:last])
	return u.snapshots[last].Clone(), UndoStack{snapshots: rest}, true
}

func (u UndoStack) Clear() UndoStack { return UndoStack{} }

// Undo restores the state before the last applied turn. With nothing to
// undo it returns its inputs unchanged.
func Undo(s MatchState, u UndoStack) (MatchState, UndoStack) {
	prev, rest, ok := u.Pop()
	if !ok {
		return s, u
	}
	return prev, rest
}

func (u UndoStack) MarshalJSON() ([]byte, error) {
	if u.snapshots == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(u.snapshots)
}

func (u *UndoStack) UnmarshalJSON(data []byte) error {
	var snapshots []MatchState
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return err
	}
	if len(snapshots) > UndoDepth {
		snapshots = snapshots[len(snapshots)-UndoDepth:]
	}
	if len(snapshots) == 0 {
		snapshots = nil
	}
	u.snapshots = snapshots
	return nil
}
