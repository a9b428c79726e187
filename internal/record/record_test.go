package record

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/benbeisheim/fablechess-backend/internal/model"
)

func play(t *testing.T, variant model.Variant, moves ...[2]string) *model.BoardState {
	t.Helper()
	board, err := model.NewBoardState(variant)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range moves {
		from, _ := model.ParseSquare(m[0])
		to, _ := model.ParseSquare(m[1])
		if _, err := board.ApplyMove(board.At(from).Color(), from, to); err != nil {
			t.Fatalf("%s-%s: %v", m[0], m[1], err)
		}
	}
	return board
}

func TestEncode(t *testing.T) {
	board := play(t, model.Chess, [2]string{"e2", "e4"}, [2]string{"e7", "e5"}, [2]string{"b1", "c3"})
	var buf bytes.Buffer
	if err := Encode(&buf, board.History()); err != nil {
		t.Fatal(err)
	}
	want := "Pe2e4\npe7e5\nWb1c3\n"
	if buf.String() != want {
		t.Errorf("Encode = %q, want %q", buf.String(), want)
	}
}

func TestDecodeAndReplay(t *testing.T) {
	input := "Wc3d4\n\nbf6e5\n  Wd4f6  \n"
	lines, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 || lines[2].String() != "Wd4f6" {
		t.Fatalf("lines = %v", lines)
	}

	board, err := Replay(model.Checkers, lines)
	if err != nil {
		t.Fatal(err)
	}
	want := play(t, model.Checkers, [2]string{"c3", "d4"}, [2]string{"f6", "e5"}, [2]string{"d4", "f6"})
	if board.Board != want.Board {
		t.Errorf("replayed board:\n%s\nwant:\n%s", board, want)
	}
	if len(board.History()) != 3 || board.CanRedo() {
		t.Errorf("history = %d, redo = %v", len(board.History()), board.CanRedo())
	}
}

func TestParseLineRejects(t *testing.T) {
	for _, in := range []string{"", "Pe2", "Pe2e44", ".e2e4", "Pz2e4", "Pe2e9"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseLine(in); !errors.Is(err, ErrMalformedLine) {
				t.Errorf("ParseLine(%q) error = %v, want ErrMalformedLine", in, err)
			}
		})
	}
}

func TestDecodeReportsLineNumber(t *testing.T) {
	_, err := Decode(strings.NewReader("Pe2e4\n\nbogus\n"))
	if !errors.Is(err, ErrMalformedLine) || !strings.HasPrefix(err.Error(), "line 3:") {
		t.Errorf("error = %v", err)
	}
}

func TestReplayRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"symbol mismatch", "Qe2e4\n", ErrSymbolMismatch},
		{"empty source", "Pe4e5\n", ErrSymbolMismatch},
		{"illegal move", "Pe2e5\n", model.ErrIllegalMove},
		{"blocked rook", "Ra1a3\n", model.ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := Replay(model.Chess, lines); !errors.Is(err, tt.want) {
				t.Errorf("Replay error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCodecPackUnpack(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatal(err)
	}
	defer codec.Close()

	board := play(t, model.Chess, [2]string{"d2", "d4"}, [2]string{"g8", "f6"}, [2]string{"c1", "e3"})
	data, err := codec.Pack(board.History())
	if err != nil {
		t.Fatal(err)
	}
	restored, err := codec.Unpack(model.Chess, data)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Board != board.Board {
		t.Errorf("unpacked board:\n%s\nwant:\n%s", restored, board)
	}

	if _, err := codec.Unpack(model.Chess, []byte("not zstd")); err == nil {
		t.Error("Unpack accepted garbage")
	}
}
