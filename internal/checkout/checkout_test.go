package checkout

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestKnownRoutes(t *testing.T) {
	tests := []struct {
		score int
		mode  Mode
		want  string
	}{
		{170, Double, "T20 T20 Bull"},
		{167, Double, "T20 T19 Bull"},
		{100, Double, "T20 D20"},
		{61, Double, "T15 D8"},
		{40, Double, "D20"},
		{3, Double, "S1 D1"},
		{2, Double, "D1"},
		{20, Simple, "S20"},
		{25, Simple, "Bull"},
		{50, Simple, "Bullseye"},
		{41, Simple, "S16 Bull"},
		{60, Simple, "S10 Bullseye"},
		{71, Simple, "T20 S11"},
		{90, Simple, "D20 Bullseye"},
		{120, Simple, "T20 T20"},
		{150, Simple, "T20 T20 T10"},
		{170, Simple, "T20 T20 Bullseye"},
	}
	for _, tt := range tests {
		got, ok := Suggest(tt.score, tt.mode)
		require.True(t, ok, "score %d %s", tt.score, tt.mode)
		assert.Equal(t, tt.want, got.String(), "score %d %s", tt.score, tt.mode)
		assert.Equal(t, tt.score, got.Total(), "score %d %s", tt.score, tt.mode)
	}
}

func TestSuggestNone(t *testing.T) {
	for _, mode := range []Mode{Simple, Double} {
		for _, score := range []int{-5, 0, 171, 180, 501} {
			_, ok := Suggest(score, mode)
			assert.False(t, ok, "score %d %s", score, mode)
		}
	}
	for _, score := range []int{1, 159, 162, 163, 165, 166, 168, 169} {
		_, ok := Suggest(score, Double)
		assert.False(t, ok, "score %d has no double-out route", score)
	}
	// Gaps in the simple-out search are kept as they are.
	for _, score := range []int{106, 111, 119, 160} {
		_, ok := Suggest(score, Simple)
		assert.False(t, ok, "score %d", score)
	}
}

func TestDoubleOutTableIsConsistent(t *testing.T) {
	for score := 2; score <= MaxScore; score++ {
		route, ok := Suggest(score, Double)
		if !ok {
			continue
		}
		assert.Equal(t, score, route.Total(), "route %s", route)
		assert.LessOrEqual(t, len(route), 3, "route %s", route)

		last := route[len(route)-1]
		isDouble := strings.HasPrefix(last.Label, "D") || last.Points == 50
		assert.True(t, isDouble, "score %d must finish on a double: %s", score, route)
	}
	assert.Len(t, doubleOut, 162)
}

func TestSimpleOutMatchesGolden(t *testing.T) {
	f, err := os.Open("testdata/simple_out.golden")
	require.NoError(t, err)
	defer f.Close()

	seen := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		parts := strings.SplitN(sc.Text(), "\t", 2)
		require.Len(t, parts, 2)
		score, err := strconv.Atoi(parts[0])
		require.NoError(t, err)

		got, ok := Suggest(score, Simple)
		if parts[1] == "-" {
			assert.False(t, ok, "score %d: unexpected %s", score, got)
		} else {
			require.True(t, ok, "score %d", score)
			assert.Equal(t, parts[1], got.String(), "score %d", score)
			assert.Equal(t, score, got.Total(), "score %d", score)
		}
		seen++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, MaxScore, seen)
}

func TestSuggestIsDeterministic(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		a, okA := Suggest(score, Simple)
		b, okB := Suggest(score, Simple)
		assert.Equal(t, okA, okB)
		assert.Equal(t, a, b)
	}
}
