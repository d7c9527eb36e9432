// Package tile provides tile references and layer classification.
package tile

import "strings"

// Ref is a single decoded tile reference: the id as stored in a cell
// payload and the name it resolves to in that cell's tile-name table.
type Ref struct {
	ID   int32
	Name string
}

// Layer is the draw layer a tile belongs to.
type Layer uint8

const (
	LayerFloor Layer = iota
	LayerWall
	LayerObject
)

func (l Layer) String() string {
	switch l {
	case LayerFloor:
		return "floor"
	case LayerWall:
		return "wall"
	case LayerObject:
		return "object"
	}
	return "unknown"
}

// ClassifyFunc assigns a tile name to a layer.
type ClassifyFunc func(name string) Layer

// Classify assigns tiles to layers by the game's naming convention:
// names containing "wall" are walls, names containing "floor" are
// floors, everything else is an object. The match is case-insensitive
// and "wall" wins when a name contains both substrings.
func Classify(name string) Layer {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "wall"):
		return LayerWall
	case strings.Contains(lower, "floor"):
		return LayerFloor
	default:
		return LayerObject
	}
}
