// Package cell holds the decoded, queryable representation of one map
// cell: a sparse set of grid squares keyed by cell-local position.
package cell

import (
	"errors"
	"iter"

	"github.com/eak1mov/go-lotmap/coord"
	"github.com/eak1mov/go-lotmap/tile"
)

// GridSquare is the decoded content at one position and z-level: tile
// references split by layer, plus the room id when the payload carried
// one. Within each layer, references keep the order they were read in.
type GridSquare struct {
	Floor  []tile.Ref
	Wall   []tile.Ref
	Object []tile.Ref

	RoomID  int32
	HasRoom bool
}

// Append adds a reference to the given layer.
func (g *GridSquare) Append(layer tile.Layer, ref tile.Ref) {
	switch layer {
	case tile.LayerFloor:
		g.Floor = append(g.Floor, ref)
	case tile.LayerWall:
		g.Wall = append(g.Wall, ref)
	default:
		g.Object = append(g.Object, ref)
	}
}

// Len returns the number of references across all layers.
func (g *GridSquare) Len() int {
	return len(g.Floor) + len(g.Wall) + len(g.Object)
}

// VisitTiles calls the visitor for every reference: the floor layer
// first, then walls, then objects, each in append order.
func (g *GridSquare) VisitTiles(visitor func(tile.Ref, tile.Layer)) {
	for _, ref := range g.Floor {
		visitor(ref, tile.LayerFloor)
	}
	for _, ref := range g.Wall {
		visitor(ref, tile.LayerWall)
	}
	for _, ref := range g.Object {
		visitor(ref, tile.LayerObject)
	}
}

type entry struct {
	pos    coord.Local
	square *GridSquare
}

// Store is the sparse set of grid squares decoded from one cell. It is
// read-only after Build; a position with no tiles has no entry.
type Store struct {
	entries []entry
	index   map[coord.Local]int
}

// Get returns the square at a position, if one was decoded there.
func (s *Store) Get(pos coord.Local) (*GridSquare, bool) {
	i, ok := s.index[pos]
	if !ok {
		return nil, false
	}
	return s.entries[i].square, true
}

// Len returns the number of populated positions.
func (s *Store) Len() int {
	return len(s.entries)
}

// VisitSquares calls the visitor for every populated position in decode
// order. It stops at, and returns, the first error from the visitor.
func (s *Store) VisitSquares(visitor func(coord.Local, *GridSquare) error) error {
	for _, e := range s.entries {
		if err := visitor(e.pos, e.square); err != nil {
			return err
		}
	}
	return nil
}

var errVisitCancelled = errors.New("visit cancelled")

// Squares returns an iterator over populated positions in decode order.
func (s *Store) Squares() iter.Seq2[coord.Local, *GridSquare] {
	return func(yield func(coord.Local, *GridSquare) bool) {
		_ = s.VisitSquares(func(pos coord.Local, square *GridSquare) error {
			if !yield(pos, square) {
				return errVisitCancelled
			}
			return nil
		})
	}
}

// Builder accumulates grid squares during decode.
type Builder struct {
	store Store
}

func NewBuilder() *Builder {
	return &Builder{store: Store{index: make(map[coord.Local]int)}}
}

// Square returns the square at pos, creating it if absent.
func (b *Builder) Square(pos coord.Local) *GridSquare {
	if i, ok := b.store.index[pos]; ok {
		return b.store.entries[i].square
	}
	square := &GridSquare{}
	b.store.index[pos] = len(b.store.entries)
	b.store.entries = append(b.store.entries, entry{pos: pos, square: square})
	return square
}

// Merge appends every square of other, keeping its decode order. A
// position already present keeps the existing square.
func (b *Builder) Merge(other *Store) {
	for _, e := range other.entries {
		if _, ok := b.store.index[e.pos]; ok {
			continue
		}
		b.store.index[e.pos] = len(b.store.entries)
		b.store.entries = append(b.store.entries, e)
	}
}

// Build returns the finished store. The builder must not be used
// afterwards.
func (b *Builder) Build() *Store {
	return &b.store
}
