// Package spec defines the wire layout of the lot file pair: the
// lotheader tile-name table and the lotpack cell payload.
package spec

import (
	"errors"
	"fmt"
	"strings"
)

// MaxTileCount is a safety limit on the tile-name table size.
const MaxTileCount = 100000

var ErrInvalidVersion = errors.New("invalid version")
var ErrInvalidTileCount = errors.New("invalid tile count")
var ErrEmptyTileName = errors.New("empty tile name")

// Header is a decoded lotheader file: the format version and the
// ordered tile-name table. The position of a name is its tile id.
type Header struct {
	Version   int32
	TileNames []string
}

// ParseHeader decodes a lotheader payload: version, tile count, then
// count names each terminated by a single '\n' byte, no length prefix.
// It fails on the first violation and does not attempt recovery.
func ParseHeader(data []byte) (*Header, error) {
	cursor := NewCursor(data)

	version, err := cursor.ReadInt32()
	if err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	count, err := cursor.ReadInt32()
	if err != nil {
		return nil, err
	}
	if count <= 0 || count > MaxTileCount {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileCount, count)
	}

	names := make([]string, 0, count)
	for i := range int(count) {
		name, err := readName(cursor)
		if err != nil {
			return nil, fmt.Errorf("tile name %d: %w", i, err)
		}
		if name == "" {
			return nil, fmt.Errorf("%w: index %d", ErrEmptyTileName, i)
		}
		names = append(names, name)
	}

	return &Header{Version: version, TileNames: names}, nil
}

func readName(cursor *Cursor) (string, error) {
	var sb strings.Builder
	for {
		b, err := cursor.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}
