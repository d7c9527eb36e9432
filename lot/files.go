package lot

import (
	"io"
	"os"

	"github.com/eak1mov/go-lotmap/cell"
	"github.com/eak1mov/go-lotmap/lot/spec"
)

// LoadHeader decodes a lotheader payload from a stream.
func LoadHeader(r io.Reader) (*spec.Header, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return spec.ParseHeader(data)
}

// LoadHeaderFile decodes the lotheader file at filePath.
func LoadHeaderFile(filePath string) (*spec.Header, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return spec.ParseHeader(data)
}

// DecodeCellFile decodes the lotpack file at filePath. The file is held
// open only for the duration of the call.
func DecodeCellFile(filePath string, table *spec.Header, opts ...Option) (*cell.Store, []ChunkError, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	return DecodeCell(data, table, opts...)
}
