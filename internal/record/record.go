// Package record reads and writes the one-move-per-line game format,
// e.g. "Pe2e4", and replays it onto a fresh board.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/fablechess-backend/internal/model"
)

var (
	ErrMalformedLine  = errors.New("malformed record line")
	ErrSymbolMismatch = errors.New("record symbol does not match the board")
)

// Line is one parsed record entry.
type Line struct {
	Piece model.Symbol
	From  model.Position
	To    model.Position
}

func (l Line) String() string {
	return fmt.Sprintf("%s%s%s", l.Piece, l.From.Notation(), l.To.Notation())
}

// Encode writes one line per ply.
func Encode(w io.Writer, plies []model.Ply) error {
	bw := bufio.NewWriter(w)
	for _, ply := range plies {
		if _, err := bw.WriteString(ply.Line() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseLine parses a single "<symbol><from><to>" entry.
func ParseLine(s string) (Line, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[0] == byte(model.Empty) {
		return Line{}, fmt.Errorf("%w: %q", ErrMalformedLine, s)
	}
	from, err := model.ParseSquare(s[1:3])
	if err != nil {
		return Line{}, fmt.Errorf("%w: %q: %w", ErrMalformedLine, s, err)
	}
	to, err := model.ParseSquare(s[3:5])
	if err != nil {
		return Line{}, fmt.Errorf("%w: %q: %w", ErrMalformedLine, s, err)
	}
	return Line{Piece: model.Symbol(s[0]), From: from, To: to}, nil
}

// Decode reads every non-blank line. Errors carry the 1-based line number.
func Decode(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		line, err := ParseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Replay builds a new board for variant and plays every line forward. The
// owner of each move comes from the line's symbol, which must match the
// piece actually standing on From. The result has an empty redo buffer.
func Replay(variant model.Variant, lines []Line) (*model.BoardState, error) {
	board, err := model.NewBoardState(variant)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		if got := board.At(line.From); got != line.Piece {
			return nil, fmt.Errorf("move %d %s: %w (found %s)", i+1, line, ErrSymbolMismatch, got)
		}
		if _, err := board.ApplyMove(line.Piece.Color(), line.From, line.To); err != nil {
			return nil, fmt.Errorf("move %d %s: %w", i+1, line, err)
		}
	}
	return board, nil
}
