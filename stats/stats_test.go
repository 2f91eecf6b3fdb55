package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStatsAddGame(t *testing.T) {
	gs := NewGameStats()
	gs.AddGame(5, 3)
	gs.AddGame(0, 0)
	gs.AddGame(7, 4)

	assert.Equal(t, 3, gs.Games)
	assert.Equal(t, 12, gs.Players)
	assert.Equal(t, []int{3, 0, 4}, gs.Survivors)
}

func TestRunStatsTotals(t *testing.T) {
	rs := NewRunStats()

	first := NewGameStats()
	first.AddGame(5, 3)
	rs.AddInput("a.txt", first)

	second := NewGameStats()
	second.AddGame(7, 4)
	second.AddGame(1, 1)
	rs.AddInput("b.txt", second)

	assert.Equal(t, 3, rs.TotalGames)
	assert.Equal(t, 13, rs.TotalPlayers)

	replaced := NewGameStats()
	rs.AddInput("b.txt", replaced)
	assert.Equal(t, 1, rs.TotalGames)
	assert.Equal(t, 5, rs.TotalPlayers)
}

func TestRunStatsJSON(t *testing.T) {
	rs := NewRunStats()
	gs := NewGameStats()
	gs.AddGame(5, 3)
	rs.AddInput("-", gs)

	data, err := json.Marshal(rs)
	require.Nil(t, err)
	assert.JSONEq(t, `{"inputs":{"-":{"games":1,"players":5,"survivors":[3]}},"totalGames":1,"totalPlayers":5}`, string(data))
}
