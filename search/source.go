package search

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/eak1mov/go-lotmap/coord"
)

// CellRef locates one cell's file pair on disk.
type CellRef struct {
	Coord      coord.Cell
	HeaderPath string
	PackPath   string
}

// Source enumerates the cells available to a search.
type Source interface {
	// Cells returns the cells within bounds. A nil bounds selects
	// every available cell.
	Cells(bounds *coord.Bounds) ([]CellRef, error)
}

// DirSource discovers cell file pairs in a map directory, where cell
// (x,y) is stored as "x_y.lotheader" plus "world_x_y.lotpack". Headers
// without a matching pack file are ignored, as are file names that do
// not fit the pattern.
type DirSource struct {
	dir string
}

var headerNameRegexp = regexp.MustCompile(`^(-?\d+)_(-?\d+)\.lotheader$`)

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Cells(bounds *coord.Bounds) ([]CellRef, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	refs := make([]CellRef, 0)
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		matches := headerNameRegexp.FindStringSubmatch(dirEntry.Name())
		if matches == nil {
			continue
		}
		x, _ := strconv.Atoi(matches[1])
		y, _ := strconv.Atoi(matches[2])

		cellCoord := coord.Cell{X: x, Y: y}
		if !bounds.Contains(cellCoord) {
			continue
		}

		packPath := filepath.Join(s.dir, fmt.Sprintf("world_%d_%d.lotpack", x, y))
		if _, err := os.Stat(packPath); err != nil {
			continue
		}

		refs = append(refs, CellRef{
			Coord:      cellCoord,
			HeaderPath: filepath.Join(s.dir, dirEntry.Name()),
			PackPath:   packPath,
		})
	}

	return refs, nil
}
