// Package search runs tile-placement queries across many cell files,
// decoding cells in parallel and aggregating matches and failures.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/eak1mov/go-lotmap/cell"
	"github.com/eak1mov/go-lotmap/coord"
	"github.com/eak1mov/go-lotmap/lot"
	"github.com/eak1mov/go-lotmap/lot/spec"
	"github.com/eak1mov/go-lotmap/tile"
)

const DefaultWorkers = 4

var ErrInvalidWorkers = errors.New("lotmap: worker count must be positive")

// Match is one found tile placement, addressed in world coordinates so
// callers never deal with cell or chunk internals.
type Match struct {
	Coord coord.World
	Tile  tile.Ref
	Layer tile.Layer
}

// CellFailure records a cell that could not be searched at all.
type CellFailure struct {
	Coord coord.Cell
	Err   error
}

// ChunkFailure records a chunk dropped from an otherwise searched cell.
type ChunkFailure struct {
	Cell  coord.Cell
	Chunk coord.Chunk
	Err   error
}

// Report aggregates the outcome of one search sweep. A sweep always
// runs to completion: failures are collected, never fatal.
type Report struct {
	Matches       []Match
	Failures      []CellFailure
	ChunkFailures []ChunkFailure

	CellsScanned int // cells whose pack file was decoded
	CellsSkipped int // cells ruled out by their name table alone
}

// Engine searches cell files for tile placements.
type Engine struct {
	source    Source
	workers   int
	logger    *slog.Logger
	classify  tile.ClassifyFunc
	cache     *storeCache
	cacheSize int64
}

type Option func(*Engine)

// WithWorkers sets the number of cells decoded concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets the logger for per-cell progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClassifier replaces the default name-based layer classification.
func WithClassifier(classify tile.ClassifyFunc) Option {
	return func(e *Engine) { e.classify = classify }
}

// WithCache keeps up to maxSquares decoded grid squares in memory so
// repeated searches over the same cells skip the pack decode. Without
// it every cell store is released as soon as its matches are merged.
func WithCache(maxSquares int64) Option {
	return func(e *Engine) { e.cacheSize = maxSquares }
}

func New(source Source, opts ...Option) (*Engine, error) {
	engine := &Engine{
		source:   source,
		workers:  DefaultWorkers,
		logger:   slog.New(slog.DiscardHandler),
		classify: tile.Classify,
	}
	for _, opt := range opts {
		opt(engine)
	}

	if engine.workers < 1 {
		return nil, ErrInvalidWorkers
	}
	if engine.cacheSize > 0 {
		cache, err := newStoreCache(engine.cacheSize)
		if err != nil {
			return nil, err
		}
		engine.cache = cache
	}

	return engine, nil
}

type cellResult struct {
	matches []Match
	dropped []lot.ChunkError
	skipped bool
	err     error
}

// Search scans every cell the source yields within bounds and returns
// the placements whose resolved tile name is one of names. Matching is
// case-insensitive. One cell's failure never aborts the sweep; it is
// recorded in the report and the remaining cells are still searched.
// Within one cell, matches keep decode order; across cells they follow
// the source's enumeration order.
//
// Cancelling ctx stops the scheduling of further cells. Cells already
// being decoded run to completion and their results are discarded.
func (e *Engine) Search(ctx context.Context, names []string, bounds *coord.Bounds) (*Report, error) {
	nameSet := make(map[string]struct{}, len(names))
	for _, name := range names {
		nameSet[strings.ToLower(name)] = struct{}{}
	}

	refs, err := e.source.Cells(bounds)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("lotmap: search start", "cells", len(refs), "workers", e.workers)

	// one slot per candidate cell; each task writes only its own slot,
	// so the merge below needs no locking
	results := make([]cellResult, len(refs))

	var group errgroup.Group
	group.SetLimit(e.workers)

	for i, ref := range refs {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			results[i] = e.searchCell(ref, nameSet)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{}
	for i, result := range results {
		cellCoord := refs[i].Coord
		switch {
		case result.err != nil:
			e.logger.Warn("lotmap: cell failed",
				"cell_x", cellCoord.X, "cell_y", cellCoord.Y, "err", result.err)
			report.Failures = append(report.Failures, CellFailure{Coord: cellCoord, Err: result.err})
		case result.skipped:
			report.CellsSkipped++
		default:
			report.CellsScanned++
			report.Matches = append(report.Matches, result.matches...)
			for _, drop := range result.dropped {
				e.logger.Warn("lotmap: chunk dropped",
					"cell_x", cellCoord.X, "cell_y", cellCoord.Y,
					"chunk_x", drop.Chunk.X, "chunk_y", drop.Chunk.Y, "err", drop.Err)
				report.ChunkFailures = append(report.ChunkFailures, ChunkFailure{
					Cell:  cellCoord,
					Chunk: drop.Chunk,
					Err:   drop.Err,
				})
			}
		}
	}

	e.logger.Debug("lotmap: search done",
		"matches", len(report.Matches),
		"scanned", report.CellsScanned,
		"skipped", report.CellsSkipped,
		"failed", len(report.Failures))
	return report, nil
}

func (e *Engine) searchCell(ref CellRef, nameSet map[string]struct{}) cellResult {
	table, err := lot.LoadHeaderFile(ref.HeaderPath)
	if err != nil {
		return cellResult{err: err}
	}

	// a cell whose name table holds none of the searched names cannot
	// match; skip the pack decode entirely
	if !tableMatches(table, nameSet) {
		return cellResult{skipped: true}
	}

	store, dropped, err := e.loadStore(ref, table)
	if err != nil {
		return cellResult{err: err}
	}

	var matches []Match
	for pos, square := range store.Squares() {
		square.VisitTiles(func(ref2 tile.Ref, layer tile.Layer) {
			if _, ok := nameSet[strings.ToLower(ref2.Name)]; !ok {
				return
			}
			matches = append(matches, Match{
				Coord: coord.LocalToWorld(ref.Coord, pos),
				Tile:  ref2,
				Layer: layer,
			})
		})
	}

	return cellResult{matches: matches, dropped: dropped}
}

func tableMatches(table *spec.Header, nameSet map[string]struct{}) bool {
	for _, name := range table.TileNames {
		if _, ok := nameSet[strings.ToLower(name)]; ok {
			return true
		}
	}
	return false
}

func (e *Engine) loadStore(ref CellRef, table *spec.Header) (*cell.Store, []lot.ChunkError, error) {
	if store, ok := e.cache.get(ref.PackPath); ok {
		return store, nil, nil
	}

	store, dropped, err := lot.DecodeCellFile(ref.PackPath, table,
		lot.WithClassifier(e.classify), lot.WithLogger(e.logger))
	if err != nil {
		return nil, nil, err
	}

	e.cache.set(ref.PackPath, store)
	return store, dropped, nil
}
