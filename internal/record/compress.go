package record

import (
	"bytes"
	"fmt"

	"github.com/benbeisheim/fablechess-backend/internal/model"
	"github.com/klauspost/compress/zstd"
)

// Codec turns move lists into compressed records and back. Encoder and
// decoder are safe for concurrent EncodeAll/DecodeAll calls.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Compress wraps text in a single zstd frame.
func (c *Codec) Compress(text []byte) []byte {
	return c.encoder.EncodeAll(text, make([]byte, 0, len(text)))
}

func (c *Codec) Decompress(data []byte) ([]byte, error) {
	text, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress record: %w", err)
	}
	return text, nil
}

// Pack encodes plies as lines and compresses the result.
func (c *Codec) Pack(plies []model.Ply) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, plies); err != nil {
		return nil, err
	}
	return c.Compress(buf.Bytes()), nil
}

// Unpack reverses Pack and replays the lines onto a fresh board.
func (c *Codec) Unpack(variant model.Variant, data []byte) (*model.BoardState, error) {
	text, err := c.Decompress(data)
	if err != nil {
		return nil, err
	}
	lines, err := Decode(bytes.NewReader(text))
	if err != nil {
		return nil, err
	}
	return Replay(variant, lines)
}

func (c *Codec) Close() {
	c.encoder.Close()
	c.decoder.Close()
}
