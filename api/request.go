package api

import (
	"encoding/json"
	"strings"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
	mc "github.com/saeidalz13/naval-battle/models/connection"
)

const (
	defaultPlayerName   = "Player"
	maxPlayerNameLength = 32
)

// Request is one incoming frame. Each handler decodes the payload it needs
// and answers with a message carrying either a payload or an error.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

func normalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultPlayerName
	}
	if runes := []rune(name); len(runes) > maxPlayerNameLength {
		return string(runes[:maxPlayerNameLength])
	}
	return name
}

// HandleNewGame replaces whatever game was live, saved one included.
func (r Request) HandleNewGame(gm mb.GameManager) mc.Message[mc.RespGame] {
	resp := mc.NewMessage[mc.RespGame](mc.CodeNewGame)

	var reqNewGame mc.Message[mc.ReqNewGame]
	if err := json.Unmarshal(r.payload, &reqNewGame); err != nil {
		resp.AddError(err.Error(), "invalid new game payload")
		return resp
	}

	game, err := gm.CreateGame(normalizePlayerName(reqNewGame.Payload.PlayerName))
	if err != nil {
		resp.AddError(err.Error(), "failed to create game")
		return resp
	}

	resp.AddPayload(mc.NewRespGame(game))
	return resp
}

// HandleResumeGame restores the saved game. Resuming can play a pending
// machine turn, so the game is returned for the caller to check its end.
func (r Request) HandleResumeGame(gm mb.GameManager) (mc.Message[mc.RespGame], *mb.Game) {
	resp := mc.NewMessage[mc.RespGame](mc.CodeResumeGame)

	game, found, err := gm.ResumeGame()
	if err != nil {
		resp.AddError(err.Error(), "failed to resume game")
		return resp, nil
	}
	if !found {
		resp.AddError("", "no saved game to resume")
		return resp, nil
	}

	resp.AddPayload(mc.NewRespGame(game))
	return resp, game
}

func (r Request) HandlePlaceShip(gm mb.GameManager) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)

	var reqPlaceShip mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(r.payload, &reqPlaceShip); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	game, err := gm.GetGame()
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	p := reqPlaceShip.Payload
	shipId, err := game.PlaceShip(p.Origin(), p.Size, p.Horizontal)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	resp.AddPayload(mc.RespPlaceShip{
		ShipId:         shipId,
		Coords:         game.ShipCells(shipId),
		State:          game.State().String(),
		RemainingShips: len(game.RemainingShips()),
	})
	return resp
}

func (r Request) HandlePlaceFleetRandomly(gm mb.GameManager) mc.Message[mc.RespGame] {
	resp := mc.NewMessage[mc.RespGame](mc.CodePlaceFleetRandomly)

	game, err := gm.GetGame()
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}
	if err := game.PlaceFleetRandomly(); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	resp.AddPayload(mc.NewRespGame(game))
	return resp
}

// HandleAttack fires the player's shot. The game is returned so the caller
// can tell whether the shot ended it.
func (r Request) HandleAttack(gm mb.GameManager) (mc.Message[mc.RespAttack], *mb.Game) {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	var reqAttack mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &reqAttack); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp, nil
	}

	game, err := gm.GetGame()
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp, nil
	}

	report, err := game.Fire(reqAttack.Payload.Row, reqAttack.Payload.Col)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp, game
	}

	resp.AddPayload(mc.NewRespAttack(report))
	return resp, game
}

func (r Request) HandleBoardState(gm mb.GameManager) mc.Message[mc.RespGame] {
	resp := mc.NewMessage[mc.RespGame](mc.CodeBoardState)

	game, err := gm.GetGame()
	if err != nil {
		resp.AddError(err.Error(), "no game to show")
		return resp
	}

	resp.AddPayload(mc.NewRespGame(game))
	return resp
}
