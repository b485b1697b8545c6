// Package stats summarises a match for the results screen.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/merev/ds-darts-engine/internal/match"
)

// PlayerStats holds one player's totals over the whole match. Bust rounds
// count their darts but score no points.
type PlayerStats struct {
	PlayerID     string  `json:"playerId"`
	Name         string  `json:"name"`
	Position     int     `json:"position"`
	LegsWon      int     `json:"legsWon"`
	Remaining    int     `json:"remaining"`
	TotalDarts   int     `json:"totalDarts"`
	PointsScored int     `json:"pointsScored"`
	AvgPer3Darts float64 `json:"avgPer3Darts"`
	Rounds       int     `json:"rounds"`
	BustRounds   int     `json:"bustRounds"`
	HighestVisit int     `json:"highestVisit"`
	HighCheckout int     `json:"highCheckout"`
}

// Compute returns stats ranked by legs won, then lowest remaining score,
// then best three-dart average.
func Compute(players []match.Player) []PlayerStats {
	out := make([]PlayerStats, 0, len(players))
	for _, p := range players {
		ps := PlayerStats{
			PlayerID:  p.ID,
			Name:      p.Name,
			LegsWon:   p.LegsWon,
			Remaining: p.CurrentScore,
		}
		for _, turn := range p.History {
			ps.Rounds++
			ps.TotalDarts += turn.DartsThrown
			if turn.WasBust {
				ps.BustRounds++
				continue
			}
			ps.PointsScored += turn.Total
			if turn.Total > ps.HighestVisit {
				ps.HighestVisit = turn.Total
			}
			if turn.IsWinningRound && turn.Total > ps.HighCheckout {
				ps.HighCheckout = turn.Total
			}
		}
		if ps.TotalDarts > 0 {
			ps.AvgPer3Darts = float64(ps.PointsScored) / float64(ps.TotalDarts) * 3
		}
		out = append(out, ps)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.LegsWon != b.LegsWon {
			return a.LegsWon > b.LegsWon
		}
		if a.Remaining != b.Remaining {
			return a.Remaining < b.Remaining
		}
		return a.AvgPer3Darts > b.AvgPer3Darts
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

const (
	minNameWidth = 6
	maxNameWidth = 10
)

// ShareText renders a plain-text result table suitable for pasting into a
// chat message.
func ShareText(s match.MatchState, now time.Time) string {
	ranked := Compute(s.Players)
	multiLeg := s.TotalLegs > 1

	mode := "Simple"
	if s.FinishMode == match.FinishDouble {
		mode = "Double Out"
	}

	width := minNameWidth
	for _, p := range s.Players {
		width = max(width, len([]rune(p.Name)))
	}
	width = min(width, maxNameWidth)

	var b strings.Builder
	b.WriteString("DART STATISTICS\n")
	b.WriteString(strings.Repeat("=", 24) + "\n")
	if multiLeg {
		fmt.Fprintf(&b, "Game: %d | Legs: %d | %s\n", s.GameType, s.TotalLegs, mode)
	} else {
		fmt.Fprintf(&b, "Game: %d | %s\n", s.GameType, mode)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", now.Format("02.01.2006 15:04"))

	col := "Rem"
	if multiLeg {
		col = "Legs"
	}
	b.WriteString("```\n")
	fmt.Fprintf(&b, "%-3s%-*s %4s %5s %5s\n", "#", width, "Player", col, "Avg3", "Darts")
	b.WriteString(strings.Repeat("=", 3+width+1+4+1+5+1+5) + "\n")
	for _, ps := range ranked {
		third := fmt.Sprintf("%d", ps.Remaining)
		if multiLeg {
			third = fmt.Sprintf("%d/%d", ps.LegsWon, s.TotalLegs)
		}
		fmt.Fprintf(&b, "%-3s%-*s %4s %5.1f %5d\n",
			fmt.Sprintf("%d.", ps.Position), width, truncate(ps.Name, width), third, ps.AvgPer3Darts, ps.TotalDarts)
	}
	b.WriteString("```\n\n")

	if w, ok := s.WinnerPlayer(); ok {
		fmt.Fprintf(&b, "Winner: %s\n", w.Name)
	}
	b.WriteString("Avg/3 = (Pts/Darts) x 3\n")
	b.WriteString("Busts included (0 pts)")
	return b.String()
}

func truncate(name string, width int) string {
	r := []rune(name)
	if len(r) <= width {
		return name
	}
	return string(r[:width-1]) + "."
}
