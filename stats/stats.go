package stats

import "sync"

// RunStats represents the summary written for a whole run
type RunStats struct {
	Inputs       map[string]*GameStats `json:"inputs"`
	TotalGames   int                   `json:"totalGames"`
	TotalPlayers int                   `json:"totalPlayers"`
	lock         sync.Mutex
}

// GameStats represents the games played from one input
type GameStats struct {
	Games     int   `json:"games"`
	Players   int   `json:"players"`
	Survivors []int `json:"survivors"`
}

// NewRunStats creates a new RunStats instance with initialized maps
func NewRunStats() *RunStats {
	return &RunStats{
		Inputs: make(map[string]*GameStats),
	}
}

func NewGameStats() *GameStats {
	return &GameStats{
		Survivors: []int{},
	}
}

// AddGame records one game; survivor is 0 for a game without players
func (gs *GameStats) AddGame(players int, survivor int) {
	gs.Games++
	gs.Players += players
	gs.Survivors = append(gs.Survivors, survivor)
}

// AddInput attaches the stats of one input and accumulates the totals.
// Safe to call from concurrent jobs.
func (rs *RunStats) AddInput(name string, gs *GameStats) {
	rs.lock.Lock()
	defer rs.lock.Unlock()

	if existing, exists := rs.Inputs[name]; exists {
		rs.TotalGames -= existing.Games
		rs.TotalPlayers -= existing.Players
	}
	rs.Inputs[name] = gs
	rs.TotalGames += gs.Games
	rs.TotalPlayers += gs.Players
}
