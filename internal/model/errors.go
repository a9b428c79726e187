package model

import "errors"

var (
	ErrInvalidNotation = errors.New("invalid square notation")
	ErrNoPieceAtSource = errors.New("no piece at source square")
	ErrWrongOwner      = errors.New("piece belongs to the other side")
	ErrIllegalMove     = errors.New("illegal move")
	ErrUnknownVariant  = errors.New("unknown game variant")
	ErrInvalidSymbol   = errors.New("invalid piece symbol")
	ErrUnknownCommand  = errors.New("unknown command")
)

var (
	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotAuthorized = errors.New("not authorized to join this game")
)
