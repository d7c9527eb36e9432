package spec

import (
	"errors"
	"fmt"
)

// Cell payload layout. The file opens with the chunk count, then a
// fixed table of (position, padding) int32 pairs, one per chunk in
// row-major order (x outer, y inner). A position of zero marks a chunk
// with no stored data; a positive position is the absolute offset of
// that chunk's slot sequences.
const (
	// ChunkCount is the number of chunks in one cell (30x30).
	ChunkCount = 900
	// SlotsPerChunk is the number of position-slots stored for one
	// populated chunk: 8 z-levels of 10x10 tiles, ordered z, x, y.
	SlotsPerChunk = 800
	// OffsetTableEnd is the offset of the first chunk payload byte.
	OffsetTableEnd = 4 + ChunkCount*8

	// SkipMarker is the slot count value that introduces a skip run.
	SkipMarker = -1
)

var ErrInvalidChunkCount = errors.New("invalid chunk count")
var ErrCorruptOffsetTable = errors.New("corrupt offset table")
var ErrInvalidSkip = errors.New("invalid skip run")
var ErrInvalidCount = errors.New("invalid tile sequence count")
var ErrUnknownTileID = errors.New("unknown tile id")

// SequenceTileCount returns how many tile ids are stored for a slot
// whose count field is n (n > 0), after the optional room id. Reference
// decoders of this format disagree between n and n-1 ids; the choice is
// isolated here so it can be corrected against a corpus of real files
// without touching the decoder.
func SequenceTileCount(n int32) int {
	return int(n)
}

// ParseOffsetTable reads the cell preamble and returns the 900 chunk
// data positions in row-major chunk order. The chunk count must be
// exactly 900 and every padding word must be zero; either violation
// aborts the whole cell.
func ParseOffsetTable(cursor *Cursor) ([]int32, error) {
	chunkCount, err := cursor.ReadInt32()
	if err != nil {
		return nil, err
	}
	if chunkCount != ChunkCount {
		return nil, fmt.Errorf("%w: %d, want %d", ErrInvalidChunkCount, chunkCount, ChunkCount)
	}

	positions := make([]int32, ChunkCount)
	for i := range positions {
		position, err := cursor.ReadInt32()
		if err != nil {
			return nil, err
		}
		padding, err := cursor.ReadInt32()
		if err != nil {
			return nil, err
		}
		if padding != 0 {
			return nil, fmt.Errorf("%w: non-zero padding %d in entry %d", ErrCorruptOffsetTable, padding, i)
		}
		positions[i] = position
	}

	return positions, nil
}
