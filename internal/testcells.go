// Package internal holds payload builders shared by tests.
package internal

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// HeaderBytes builds a lotheader payload: version, count, then each
// name terminated by '\n'.
func HeaderBytes(version int32, names ...string) []byte {
	var buffer bytes.Buffer
	binary.Write(&buffer, binary.LittleEndian, version)
	binary.Write(&buffer, binary.LittleEndian, int32(len(names)))
	for _, name := range names {
		buffer.WriteString(name)
		buffer.WriteByte('\n')
	}
	return buffer.Bytes()
}

// Int32s encodes int32 fields little-endian, the raw material of chunk
// slot sequences.
func Int32s(fields ...int32) []byte {
	var buffer bytes.Buffer
	for _, field := range fields {
		binary.Write(&buffer, binary.LittleEndian, field)
	}
	return buffer.Bytes()
}

// CellBuilder assembles a synthetic cell payload. Chunk payloads are
// laid out after the offset table in chunk order; chunks that were
// never set keep a zero position.
type CellBuilder struct {
	chunkCount int32
	chunks     map[int][]byte
}

func NewCellBuilder() *CellBuilder {
	return &CellBuilder{chunkCount: 900, chunks: make(map[int][]byte)}
}

// WithChunkCount overrides the leading chunk count, for corrupt-header
// cases. The offset table keeps its 900 entries.
func (b *CellBuilder) WithChunkCount(count int32) *CellBuilder {
	b.chunkCount = count
	return b
}

// SetChunk stores the slot-sequence payload for chunk (x, y). The
// payload must account for exactly 800 slots to decode cleanly.
func (b *CellBuilder) SetChunk(x, y int, payload []byte) *CellBuilder {
	b.chunks[x*30+y] = payload
	return b
}

// Bytes lays out the full cell payload.
func (b *CellBuilder) Bytes() []byte {
	const tableEnd = 4 + 900*8

	indices := make([]int, 0, len(b.chunks))
	for i := range b.chunks {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	positions := make([]int32, 900)
	position := int32(tableEnd)
	for _, i := range indices {
		positions[i] = position
		position += int32(len(b.chunks[i]))
	}

	var buffer bytes.Buffer
	binary.Write(&buffer, binary.LittleEndian, b.chunkCount)
	for _, pos := range positions {
		binary.Write(&buffer, binary.LittleEndian, pos)
		binary.Write(&buffer, binary.LittleEndian, int32(0))
	}
	for _, i := range indices {
		buffer.Write(b.chunks[i])
	}
	return buffer.Bytes()
}
