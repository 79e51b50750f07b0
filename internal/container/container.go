// Package container implements the RIFX chunk-index layer: detecting the
// file's byte order and top-level codec, then building a chunk index via
// one of two backends (plain memory-map or compressed Afterburner).
package container

import (
	"encoding/binary"
	"fmt"
)

// ByteOrderOf inspects the 4-byte magic at offset 0 and returns the
// file's declared byte order. "RIFX" is big-endian, "XFIR" is
// little-endian (spec.md §6).
func ByteOrderOf(file []byte) (binary.ByteOrder, error) {
	if len(file) < 12 {
		return nil, fmt.Errorf("container: file too short for header: %w", ErrNotRIFX)
	}
	switch {
	case file[0] == 'R' && file[1] == 'I' && file[2] == 'F' && file[3] == 'X':
		return binary.BigEndian, nil
	case file[0] == 'X' && file[1] == 'F' && file[2] == 'I' && file[3] == 'R':
		return binary.LittleEndian, nil
	default:
		return nil, ErrNotRIFX
	}
}

// New parses the top-level RIFX/XFIR header, determines the codec
// (plain "MV93"/"MC95" or compressed "FGDM"/"FGDC") and builds a chunk
// index using the matching backend.
func New(file []byte) (*Index, error) {
	order, err := ByteOrderOf(file)
	if err != nil {
		return nil, err
	}

	codec := order.Uint32(file[8:12])
	switch codec {
	case FourCCMV93, FourCCMC95:
		return parsePlain(file, order)
	case FourCCFGDM, FourCCFGDC:
		return parseAfterburner(file, order)
	default:
		return nil, fmt.Errorf("container: codec %q: %w", FourCCString(codec), ErrUnsupportedCodec)
	}
}
