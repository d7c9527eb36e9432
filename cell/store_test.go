package cell_test

import (
	"testing"

	"github.com/eak1mov/go-lotmap/cell"
	"github.com/eak1mov/go-lotmap/coord"
	"github.com/eak1mov/go-lotmap/tile"
	"github.com/google/go-cmp/cmp"
)

func TestBuilderSquareGetOrCreate(t *testing.T) {
	builder := cell.NewBuilder()
	pos := coord.Local{X: 5, Y: 6, Z: 2}

	first := builder.Square(pos)
	first.Append(tile.LayerFloor, tile.Ref{ID: 0, Name: "floor_tiles_01"})

	second := builder.Square(pos)
	if first != second {
		t.Fatal("Square should return the existing square for a known position")
	}

	store := builder.Build()
	if store.Len() != 1 {
		t.Fatalf("Len() = %v, want 1", store.Len())
	}

	square, ok := store.Get(pos)
	if !ok {
		t.Fatal("Get should find the built square")
	}
	if square.Len() != 1 {
		t.Errorf("square.Len() = %v, want 1", square.Len())
	}
}

func TestStoreGetMiss(t *testing.T) {
	store := cell.NewBuilder().Build()
	if _, ok := store.Get(coord.Local{X: 1, Y: 1, Z: 1}); ok {
		t.Error("Get on an empty store should miss")
	}
}

func TestStoreDecodeOrder(t *testing.T) {
	builder := cell.NewBuilder()
	positions := []coord.Local{
		{X: 9, Y: 9, Z: 0},
		{X: 0, Y: 0, Z: 3},
		{X: 5, Y: 1, Z: 0},
	}
	for _, pos := range positions {
		builder.Square(pos)
	}
	store := builder.Build()

	got := make([]coord.Local, 0, store.Len())
	for pos := range store.Squares() {
		got = append(got, pos)
	}
	if diff := cmp.Diff(positions, got); diff != "" {
		t.Errorf("iteration order mismatch (-want+got):\n%v", diff)
	}
}

func TestStoreIteratorEarlyBreak(t *testing.T) {
	builder := cell.NewBuilder()
	for i := range 10 {
		builder.Square(coord.Local{X: i, Y: 0, Z: 0})
	}
	store := builder.Build()

	seen := 0
	for range store.Squares() {
		seen++
		if seen == 3 {
			break
		}
	}
	if seen != 3 {
		t.Errorf("seen = %v, want 3", seen)
	}
}

func TestBuilderMerge(t *testing.T) {
	chunk := cell.NewBuilder()
	chunk.Square(coord.Local{X: 10, Y: 0, Z: 0}).Append(tile.LayerWall, tile.Ref{ID: 1, Name: "wall_tiles_01"})
	chunk.Square(coord.Local{X: 11, Y: 0, Z: 0})

	builder := cell.NewBuilder()
	builder.Square(coord.Local{X: 0, Y: 0, Z: 0})
	builder.Merge(chunk.Build())
	store := builder.Build()

	if store.Len() != 3 {
		t.Fatalf("Len() = %v, want 3", store.Len())
	}
	square, ok := store.Get(coord.Local{X: 10, Y: 0, Z: 0})
	if !ok {
		t.Fatal("merged square not found")
	}
	if len(square.Wall) != 1 {
		t.Errorf("len(Wall) = %v, want 1", len(square.Wall))
	}
}

func TestGridSquareVisitTiles(t *testing.T) {
	square := &cell.GridSquare{}
	square.Append(tile.LayerObject, tile.Ref{ID: 4, Name: "vegetation_trees_01"})
	square.Append(tile.LayerFloor, tile.Ref{ID: 0, Name: "floor_tiles_01"})
	square.Append(tile.LayerWall, tile.Ref{ID: 1, Name: "wall_tiles_01"})
	square.Append(tile.LayerFloor, tile.Ref{ID: 2, Name: "floor_tiles_02"})

	var layers []tile.Layer
	var ids []int32
	square.VisitTiles(func(ref tile.Ref, layer tile.Layer) {
		layers = append(layers, layer)
		ids = append(ids, ref.ID)
	})

	wantLayers := []tile.Layer{tile.LayerFloor, tile.LayerFloor, tile.LayerWall, tile.LayerObject}
	if diff := cmp.Diff(wantLayers, layers); diff != "" {
		t.Errorf("layer order mismatch (-want+got):\n%v", diff)
	}
	wantIDs := []int32{0, 2, 1, 4}
	if diff := cmp.Diff(wantIDs, ids); diff != "" {
		t.Errorf("id order mismatch (-want+got):\n%v", diff)
	}
}
