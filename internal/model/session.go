package model

import "fmt"

type CommandKind string

const (
	CommandMove    CommandKind = "move"
	CommandUndo    CommandKind = "undo"
	CommandRedo    CommandKind = "redo"
	CommandHint    CommandKind = "hint"
	CommandThreats CommandKind = "threats"
)

// Command is one player request against a board. From/To are used by
// moves, Square by hint and threats.
type Command struct {
	Kind   CommandKind `json:"kind"`
	From   string      `json:"from,omitempty"`
	To     string      `json:"to,omitempty"`
	Square string      `json:"square,omitempty"`
}

// Result is what a command produced. Changed is set whenever the board was
// mutated; read-only commands fill Square and Squares.
type Result struct {
	Kind    CommandKind `json:"kind"`
	Changed bool        `json:"changed"`
	Ply     *Ply        `json:"ply,omitempty"`
	Square  string      `json:"square,omitempty"`
	Squares []string    `json:"squares,omitempty"`
}

// Session wraps a board with the command interface. It holds no lock;
// Game serialises access.
type Session struct {
	Board *BoardState
}

func NewSession(variant Variant) (*Session, error) {
	board, err := NewBoardState(variant)
	if err != nil {
		return nil, err
	}
	return &Session{Board: board}, nil
}

// ToMove is white on an empty history and otherwise the side that did not
// make the last move.
func (s *Session) ToMove() PlayerColor {
	last, ok := s.Board.LastPly()
	if !ok {
		return PlayerColorWhite
	}
	return last.Piece.Color().Opponent()
}

// Apply runs cmd for actor and reports what happened. Errors leave the
// board untouched.
func (s *Session) Apply(actor PlayerColor, cmd Command) (Result, error) {
	res := Result{Kind: cmd.Kind}
	switch cmd.Kind {
	case CommandMove:
		from, err := ParseSquare(cmd.From)
		if err != nil {
			return res, err
		}
		to, err := ParseSquare(cmd.To)
		if err != nil {
			return res, err
		}
		ply, err := s.Board.ApplyMove(actor, from, to)
		if err != nil {
			return res, err
		}
		res.Changed = true
		res.Ply = &ply
	case CommandUndo:
		res.Changed = s.Board.Undo()
	case CommandRedo:
		res.Changed = s.Board.Redo()
	case CommandHint:
		sq, err := ParseSquare(cmd.Square)
		if err != nil {
			return res, err
		}
		moves, err := s.hint(actor, sq)
		if err != nil {
			return res, err
		}
		res.Square = sq.Notation()
		res.Squares = notations(moves)
	case CommandThreats:
		sq, err := ParseSquare(cmd.Square)
		if err != nil {
			return res, err
		}
		defender := s.Board.At(sq).Color()
		if defender == "" {
			defender = actor
		}
		res.Square = sq.Notation()
		res.Squares = notations(s.Board.AttackersOf(sq, defender))
	default:
		return res, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
	return res, nil
}

// hint lists moves for one of the actor's own pieces.
func (s *Session) hint(actor PlayerColor, sq Position) ([]Position, error) {
	piece := s.Board.At(sq)
	if piece.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrNoPieceAtSource, sq.Notation())
	}
	if piece.Color() != actor {
		return nil, fmt.Errorf("%w: %s on %s", ErrWrongOwner, piece, sq.Notation())
	}
	return s.Board.GenerateMoves(sq), nil
}
