package model

// Player is a matchmaking entry; colours are assigned when a pair is seated.
type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	switch c {
	case PlayerColorWhite:
		return PlayerColorBlack
	case PlayerColorBlack:
		return PlayerColorWhite
	}
	return ""
}
