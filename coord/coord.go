// Package coord defines the coordinate spaces of the map format and the
// conversions between them: absolute world positions, 300x300-tile cells,
// 10x10-tile chunks, and positions local to a cell or chunk.
package coord

const (
	// CellSize is the number of tiles in each dimension of a cell.
	CellSize = 300
	// ChunkSize is the number of tiles in each dimension of a chunk.
	ChunkSize = 10
	// ChunksPerCell is the number of chunks in each dimension of a cell.
	ChunksPerCell = CellSize / ChunkSize
	// MaxLevels is the number of z-levels per position.
	MaxLevels = 8
)

// World is an absolute tile position measured from the world origin.
type World struct {
	X int
	Y int
	Z int
}

func (w World) Valid() bool {
	return w.Z >= 0 && w.Z < MaxLevels
}

// Cell identifies a 300x300-tile section of the world. Cell (0,0) covers
// world positions with x and y in [0,299]. One cell corresponds to one
// lotheader/lotpack file pair.
type Cell struct {
	X int
	Y int
}

// Chunk identifies a 10x10-tile section. Within a cell, chunk indices
// run from (0,0) to (29,29).
type Chunk struct {
	X int
	Y int
}

// Local is a position within a cell: x and y in [0,299], z in [0,7].
type Local struct {
	X int
	Y int
	Z int
}

func (l Local) Valid() bool {
	return l.X >= 0 && l.X < CellSize &&
		l.Y >= 0 && l.Y < CellSize &&
		l.Z >= 0 && l.Z < MaxLevels
}

// ChunkLocal is a position within a chunk: x and y in [0,9], z in [0,7].
type ChunkLocal struct {
	X int
	Y int
	Z int
}

// WorldToCell splits an absolute position into its containing cell and
// the position within that cell.
func WorldToCell(w World) (Cell, Local) {
	return Cell{X: floorDiv(w.X, CellSize), Y: floorDiv(w.Y, CellSize)},
		Local{X: floorMod(w.X, CellSize), Y: floorMod(w.Y, CellSize), Z: w.Z}
}

// WorldToChunk splits an absolute position into its containing chunk
// (in global chunk indices) and the position within that chunk.
func WorldToChunk(w World) (Chunk, ChunkLocal) {
	return Chunk{X: floorDiv(w.X, ChunkSize), Y: floorDiv(w.Y, ChunkSize)},
		ChunkLocal{X: floorMod(w.X, ChunkSize), Y: floorMod(w.Y, ChunkSize), Z: w.Z}
}

// LocalToChunk splits a cell-local position into the chunk index within
// the cell and the position within that chunk.
func LocalToChunk(l Local) (Chunk, ChunkLocal) {
	return Chunk{X: floorDiv(l.X, ChunkSize), Y: floorDiv(l.Y, ChunkSize)},
		ChunkLocal{X: floorMod(l.X, ChunkSize), Y: floorMod(l.Y, ChunkSize), Z: l.Z}
}

// LocalToWorld is the inverse of WorldToCell: it resolves a cell-local
// position back to the absolute world position.
func LocalToWorld(c Cell, l Local) World {
	return World{
		X: c.X*CellSize + l.X,
		Y: c.Y*CellSize + l.Y,
		Z: l.Z,
	}
}

// ChunkToCell resolves a global chunk index to its containing cell and
// the chunk index within that cell.
func ChunkToCell(ch Chunk) (Cell, Chunk) {
	return Cell{X: floorDiv(ch.X, ChunksPerCell), Y: floorDiv(ch.Y, ChunksPerCell)},
		Chunk{X: floorMod(ch.X, ChunksPerCell), Y: floorMod(ch.Y, ChunksPerCell)}
}

// Integer division and remainder rounding toward negative infinity, so
// conversions hold for positions west or north of the origin.

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
