package search_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-lotmap/coord"
	"github.com/eak1mov/go-lotmap/internal"
	"github.com/eak1mov/go-lotmap/lot/spec"
	"github.com/eak1mov/go-lotmap/search"
	"github.com/eak1mov/go-lotmap/tile"
	"github.com/google/go-cmp/cmp"
)

// twoCellDir builds a map with cell (0,0) holding one floor square at
// its origin and cell (1,0) holding one wall square at local (5,6,2).
func twoCellDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeCellFiles(t, dir, 0, 0,
		internal.HeaderBytes(1, "floor_tiles_01"),
		internal.NewCellBuilder().
			SetChunk(0, 0, internal.Int32s(1, 0, -1, 799)).
			Bytes())

	// slot 256 of chunk (0,0) is z=2, x=5, y=6
	writeCellFiles(t, dir, 1, 0,
		internal.HeaderBytes(1, "floor_tiles_01", "wall_tiles_01"),
		internal.NewCellBuilder().
			SetChunk(0, 0, internal.Int32s(-1, 256, 1, 1, -1, 543)).
			Bytes())

	return dir
}

func TestSearchFindsWallTile(t *testing.T) {
	engine, err := search.New(search.NewDirSource(twoCellDir(t)), search.WithWorkers(4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := engine.Search(context.Background(), []string{"wall_tiles_01"}, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []search.Match{{
		Coord: coord.World{X: 305, Y: 6, Z: 2},
		Tile:  tile.Ref{ID: 1, Name: "wall_tiles_01"},
		Layer: tile.LayerWall,
	}}
	if diff := cmp.Diff(want, report.Matches); diff != "" {
		t.Errorf("matches mismatch (-want+got):\n%v", diff)
	}
	if len(report.Failures) != 0 {
		t.Errorf("failures = %v, want none", report.Failures)
	}

	// cell (0,0) has no wall names in its table, so only its header
	// was read
	if report.CellsScanned != 1 || report.CellsSkipped != 1 {
		t.Errorf("scanned/skipped = %v/%v, want 1/1", report.CellsScanned, report.CellsSkipped)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	engine, err := search.New(search.NewDirSource(twoCellDir(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := engine.Search(context.Background(), []string{"WALL_Tiles_01"}, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(report.Matches) != 1 {
		t.Errorf("len(Matches) = %v, want 1", len(report.Matches))
	}
}

func TestSearchBounds(t *testing.T) {
	engine, err := search.New(search.NewDirSource(twoCellDir(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// restrict to cell (0,0); the wall square lives in cell (1,0)
	bounds, err := coord.NewBounds(0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	report, err := engine.Search(context.Background(), []string{"wall_tiles_01"}, bounds)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(report.Matches) != 0 {
		t.Errorf("matches = %v, want none", report.Matches)
	}
}

func TestSearchAggregatesFailures(t *testing.T) {
	dir := twoCellDir(t)

	// cell (2,0): valid header, corrupt pack preamble
	writeCellFiles(t, dir, 2, 0,
		internal.HeaderBytes(1, "wall_tiles_01"),
		internal.NewCellBuilder().WithChunkCount(899).Bytes())

	engine, err := search.New(search.NewDirSource(dir), search.WithWorkers(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := engine.Search(context.Background(), []string{"wall_tiles_01"}, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// the corrupt cell is reported, the good cell still matched
	if len(report.Matches) != 1 {
		t.Errorf("len(Matches) = %v, want 1", len(report.Matches))
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %v, want exactly one", report.Failures)
	}
	if want := (coord.Cell{X: 2, Y: 0}); report.Failures[0].Coord != want {
		t.Errorf("failed cell = %v, want %v", report.Failures[0].Coord, want)
	}
	if !errors.Is(report.Failures[0].Err, spec.ErrInvalidChunkCount) {
		t.Errorf("failure = %v, want ErrInvalidChunkCount", report.Failures[0].Err)
	}
}

func TestSearchReportsDroppedChunks(t *testing.T) {
	dir := t.TempDir()
	writeCellFiles(t, dir, 0, 0,
		internal.HeaderBytes(1, "wall_tiles_01"),
		internal.NewCellBuilder().
			SetChunk(0, 0, internal.Int32s(1, 0, -1, 799)).
			SetChunk(4, 4, internal.Int32s(-1, 9000)).
			Bytes())

	engine, err := search.New(search.NewDirSource(dir))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := engine.Search(context.Background(), []string{"wall_tiles_01"}, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(report.Matches) != 1 {
		t.Errorf("len(Matches) = %v, want 1", len(report.Matches))
	}
	if len(report.ChunkFailures) != 1 {
		t.Fatalf("chunk failures = %v, want exactly one", report.ChunkFailures)
	}
	drop := report.ChunkFailures[0]
	if drop.Cell != (coord.Cell{X: 0, Y: 0}) || drop.Chunk != (coord.Chunk{X: 4, Y: 4}) {
		t.Errorf("dropped chunk = %v/%v, want cell (0,0) chunk (4,4)", drop.Cell, drop.Chunk)
	}
	if !errors.Is(drop.Err, spec.ErrInvalidSkip) {
		t.Errorf("drop error = %v, want ErrInvalidSkip", drop.Err)
	}
}

func TestSearchCache(t *testing.T) {
	dir := twoCellDir(t)
	engine, err := search.New(search.NewDirSource(dir), search.WithCache(1<<20))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, err := engine.Search(context.Background(), []string{"wall_tiles_01"}, nil)
	if err != nil {
		t.Fatalf("first Search failed: %v", err)
	}
	if len(first.Matches) != 1 {
		t.Fatalf("len(Matches) = %v, want 1", len(first.Matches))
	}

	// wipe the pack on disk; a cached engine must keep answering from
	// the decoded store
	packPath := filepath.Join(dir, "world_1_0.lotpack")
	empty := internal.NewCellBuilder().Bytes()
	if err := os.WriteFile(packPath, empty, 0o644); err != nil {
		t.Fatal(err)
	}

	second, err := engine.Search(context.Background(), []string{"wall_tiles_01"}, nil)
	if err != nil {
		t.Fatalf("second Search failed: %v", err)
	}
	if diff := cmp.Diff(first.Matches, second.Matches); diff != "" {
		t.Errorf("cached search diverged (-first+second):\n%v", diff)
	}
}

func TestSearchCancelled(t *testing.T) {
	engine, err := search.New(search.NewDirSource(twoCellDir(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Search(ctx, []string{"wall_tiles_01"}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Search error = %v, want context.Canceled", err)
	}
}

func TestSearchNoNames(t *testing.T) {
	engine, err := search.New(search.NewDirSource(twoCellDir(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := engine.Search(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(report.Matches) != 0 {
		t.Errorf("matches = %v, want none", report.Matches)
	}
	if report.CellsSkipped != 2 {
		t.Errorf("CellsSkipped = %v, want 2", report.CellsSkipped)
	}
}

func TestNewRejectsBadWorkerCount(t *testing.T) {
	if _, err := search.New(search.NewDirSource(t.TempDir()), search.WithWorkers(0)); !errors.Is(err, search.ErrInvalidWorkers) {
		t.Errorf("New error = %v, want ErrInvalidWorkers", err)
	}
}
