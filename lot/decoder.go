// Package lot decodes the game's map cell file pair: the lotheader
// tile-name table and the lotpack cell payload.
package lot

import (
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-lotmap/cell"
	"github.com/eak1mov/go-lotmap/coord"
	"github.com/eak1mov/go-lotmap/lot/spec"
	"github.com/eak1mov/go-lotmap/tile"
)

// ChunkError reports a decode failure confined to a single chunk.
type ChunkError struct {
	Chunk coord.Chunk
	Err   error
}

func (e ChunkError) Error() string {
	return fmt.Sprintf("chunk (%d,%d): %v", e.Chunk.X, e.Chunk.Y, e.Err)
}

func (e ChunkError) Unwrap() error {
	return e.Err
}

type config struct {
	logger   *slog.Logger
	classify tile.ClassifyFunc
}

type Option func(*config)

// WithLogger sets the logger used for per-chunk diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithClassifier replaces the default name-based layer classification.
func WithClassifier(classify tile.ClassifyFunc) Option {
	return func(c *config) { c.classify = classify }
}

// DecodeCell decodes one cell payload against its tile-name table.
//
// Violations in the cell preamble (chunk count, offset-table padding)
// abort the whole decode and return a nil store. A violation inside one
// chunk drops only that chunk: its coordinate and reason are appended
// to the returned diagnostics and decoding continues with the remaining
// chunks, so a partially corrupt file still yields every intact chunk.
func DecodeCell(data []byte, table *spec.Header, opts ...Option) (*cell.Store, []ChunkError, error) {
	config := config{
		logger:   slog.New(slog.DiscardHandler),
		classify: tile.Classify,
	}
	for _, opt := range opts {
		opt(&config)
	}

	cursor := spec.NewCursor(data)
	positions, err := spec.ParseOffsetTable(cursor)
	if err != nil {
		return nil, nil, err
	}

	builder := cell.NewBuilder()
	var failures []ChunkError

	for i, position := range positions {
		if position == 0 {
			continue // chunk has no stored data
		}
		chunk := coord.Chunk{X: i / coord.ChunksPerCell, Y: i % coord.ChunksPerCell}

		chunkStore, err := decodeChunk(cursor, int64(position), chunk, table, config.classify)
		if err != nil {
			config.logger.Warn("lotmap: chunk dropped",
				"chunk_x", chunk.X, "chunk_y", chunk.Y, "err", err)
			failures = append(failures, ChunkError{Chunk: chunk, Err: err})
			continue
		}
		builder.Merge(chunkStore)
	}

	return builder.Build(), failures, nil
}

// decodeChunk decodes the 800 position-slots of one chunk into its own
// builder, so a failed chunk contributes nothing to the cell.
func decodeChunk(cursor *spec.Cursor, position int64, chunk coord.Chunk, table *spec.Header, classify tile.ClassifyFunc) (*cell.Store, error) {
	if err := cursor.Seek(position); err != nil {
		return nil, err
	}

	builder := cell.NewBuilder()
	baseX := chunk.X * coord.ChunkSize
	baseY := chunk.Y * coord.ChunkSize

	slot := 0
	for slot < spec.SlotsPerChunk {
		count, err := cursor.ReadInt32()
		if err != nil {
			return nil, err
		}

		switch {
		case count == spec.SkipMarker:
			skip, err := cursor.ReadInt32()
			if err != nil {
				return nil, err
			}
			// the run covers the current slot
			if skip < 1 || slot+int(skip) > spec.SlotsPerChunk {
				return nil, fmt.Errorf("%w: %d at slot %d", spec.ErrInvalidSkip, skip, slot)
			}
			slot += int(skip)

		case count == 0:
			slot++

		case count > 0:
			pos := slotPosition(baseX, baseY, slot)
			if err := decodeSequence(cursor, builder, pos, count, table, classify); err != nil {
				return nil, fmt.Errorf("slot %d: %w", slot, err)
			}
			slot++

		default:
			return nil, fmt.Errorf("%w: %d at slot %d", spec.ErrInvalidCount, count, slot)
		}
	}

	return builder.Build(), nil
}

// Slots are stored z-outer, then x, then y, matching the write order of
// the packing tool.
func slotPosition(baseX, baseY, slot int) coord.Local {
	z := slot / (coord.ChunkSize * coord.ChunkSize)
	rem := slot % (coord.ChunkSize * coord.ChunkSize)
	return coord.Local{
		X: baseX + rem/coord.ChunkSize,
		Y: baseY + rem%coord.ChunkSize,
		Z: z,
	}
}

func decodeSequence(cursor *spec.Cursor, builder *cell.Builder, pos coord.Local, count int32, table *spec.Header, classify tile.ClassifyFunc) error {
	square := builder.Square(pos)

	// room id is stored only for multi-tile sequences
	if count > 1 {
		roomID, err := cursor.ReadInt32()
		if err != nil {
			return err
		}
		square.RoomID = roomID
		square.HasRoom = true
	}

	for range spec.SequenceTileCount(count) {
		id, err := cursor.ReadInt32()
		if err != nil {
			return err
		}
		if id < 0 || int(id) >= len(table.TileNames) {
			return fmt.Errorf("%w: %d (table has %d names)", spec.ErrUnknownTileID, id, len(table.TileNames))
		}
		ref := tile.Ref{ID: id, Name: table.TileNames[id]}
		square.Append(classify(ref.Name), ref)
	}

	return nil
}
