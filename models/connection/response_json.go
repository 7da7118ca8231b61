package connection

import (
	mb "github.com/saeidalz13/naval-battle/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespFleetEntry struct {
	Size int    `json:"size"`
	Name string `json:"name"`
}

// RespGame is the full picture of the game as the human may see it.
type RespGame struct {
	GameUuid       string           `json:"game_uuid"`
	PlayerName     string           `json:"player_name"`
	State          string           `json:"state"`
	IsPlayerTurn   bool             `json:"is_player_turn"`
	Shots          int              `json:"shots"`
	HumanSunk      int              `json:"human_sunk"`
	MachineSunk    int              `json:"machine_sunk"`
	HumanGrid      mb.Grid          `json:"human_grid"`
	EnemyGrid      mb.Grid          `json:"enemy_grid"`
	RemainingShips []RespFleetEntry `json:"remaining_ships"`
}

func NewRespGame(g *mb.Game) RespGame {
	humanSunk, machineSunk := g.SunkCounts()

	remaining := g.RemainingShips()
	entries := make([]RespFleetEntry, 0, len(remaining))
	for _, entry := range remaining {
		entries = append(entries, RespFleetEntry{Size: entry.Size, Name: entry.Name})
	}

	return RespGame{
		GameUuid:       g.Uuid(),
		PlayerName:     g.PlayerName(),
		State:          g.State().String(),
		IsPlayerTurn:   g.IsPlayerTurn(),
		Shots:          g.Shots(),
		HumanSunk:      humanSunk,
		MachineSunk:    machineSunk,
		HumanGrid:      g.HumanView(),
		EnemyGrid:      g.EnemyView(),
		RemainingShips: entries,
	}
}

type RespPlaceShip struct {
	ShipId         mb.ShipID        `json:"ship_id"`
	Coords         []mb.Coordinates `json:"coords"`
	State          string           `json:"state"`
	RemainingShips int              `json:"remaining_ships"`
}

type RespShot struct {
	Row            int              `json:"row"`
	Col            int              `json:"col"`
	Result         string           `json:"result"`
	SunkShipCoords []mb.Coordinates `json:"sunk_ship_coords,omitempty"`
}

func NewRespShot(report mb.ShotReport) RespShot {
	return RespShot{
		Row:            report.Row,
		Col:            report.Col,
		Result:         report.Outcome.Result.String(),
		SunkShipCoords: report.SunkShipCoords,
	}
}

// RespAttack carries the player's shot and, after a miss, every shot of the
// machine turn that followed.
type RespAttack struct {
	Player       RespShot   `json:"player"`
	Machine      []RespShot `json:"machine,omitempty"`
	State        string     `json:"state"`
	IsPlayerTurn bool       `json:"is_player_turn"`
	HumanSunk    int        `json:"human_sunk"`
	MachineSunk  int        `json:"machine_sunk"`
}

func NewRespAttack(report mb.TurnReport) RespAttack {
	resp := RespAttack{
		State:        report.State.String(),
		IsPlayerTurn: report.IsPlayerTurn,
		HumanSunk:    report.HumanSunk,
		MachineSunk:  report.MachineSunk,
	}
	if report.Player != nil {
		resp.Player = NewRespShot(*report.Player)
	}
	for _, shot := range report.Machine {
		resp.Machine = append(resp.Machine, NewRespShot(shot))
	}
	return resp
}

type RespEndGame struct {
	PlayerMatchStatus int    `json:"player_match_status"`
	Result            string `json:"result"`
	ShipsSunk         int    `json:"ships_sunk"`
	Shots             int    `json:"shots"`
}

func NewRespEndGame(g *mb.Game) RespEndGame {
	result := g.Result()
	return RespEndGame{
		PlayerMatchStatus: g.MatchStatus(),
		Result:            result.Result,
		ShipsSunk:         result.ShipsSunk,
		Shots:             result.Shots,
	}
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
