package connection

import mb "github.com/saeidalz13/naval-battle/models/battleship"

type ReqNewGame struct {
	PlayerName string `json:"player_name"`
}

type ReqPlaceShip struct {
	Row        int  `json:"row"`
	Col        int  `json:"col"`
	Size       int  `json:"size"`
	Horizontal bool `json:"horizontal"`
}

func (r ReqPlaceShip) Origin() mb.Coordinates {
	return mb.NewCoordinates(r.Row, r.Col)
}

type ReqAttack struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
