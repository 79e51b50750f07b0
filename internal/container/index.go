package container

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// ChunkInfo describes one chunk's location and compression within the
// file. It is immutable once the index is built. id is unique per file;
// the pair (fourCC, id) is unique.
type ChunkInfo struct {
	ID               uint32
	FourCC           uint32
	Len              uint32
	UncompressedLen  uint32
	Offset           uint32
	CompressionID    MoaID
}

// Index enumerates the chunks of a RIFX file, keyed by id and by fourCC.
// Two backends populate it: the plain memory-map ("mmap") format and the
// compressed Afterburner format. Once built, callers use First/IDs/ByID/
// Body/Exists uniformly regardless of which backend produced it —
// mirroring how deepteams-webp/mux.Demuxer hides RIFF chunk-walking
// behind one type regardless of which optional chunks (VP8X/ANIM/ALPH)
// are present.
type Index struct {
	file      []byte
	fileOrder binary.ByteOrder

	byID    map[uint32]ChunkInfo
	byFourCC map[uint32][]uint32 // insertion order = first-appearance order

	cache map[uint32][]byte

	// ilsCache holds Afterburner chunk bodies prepopulated from the FGEI
	// initial load segment; these replace later on-disk fetches.
	ilsCache map[uint32][]byte
}

func newIndex(file []byte, order binary.ByteOrder) *Index {
	return &Index{
		file:      file,
		fileOrder: order,
		byID:      make(map[uint32]ChunkInfo),
		byFourCC:  make(map[uint32][]uint32),
		cache:     make(map[uint32][]byte),
	}
}

func (ix *Index) add(ci ChunkInfo) {
	ix.byID[ci.ID] = ci
	ix.byFourCC[ci.FourCC] = append(ix.byFourCC[ci.FourCC], ci.ID)
}

// First returns the id of the first chunk with the given fourCC, in
// insertion (memory-map) order.
func (ix *Index) First(fourCC uint32) (uint32, bool) {
	ids := ix.byFourCC[fourCC]
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// IDs returns every id with the given fourCC, in insertion order.
func (ix *Index) IDs(fourCC uint32) []uint32 {
	return ix.byFourCC[fourCC]
}

// ByID returns the ChunkInfo for id.
func (ix *Index) ByID(id uint32) (ChunkInfo, bool) {
	ci, ok := ix.byID[id]
	return ci, ok
}

// Exists reports whether a chunk with the given (fourCC, id) pair exists.
func (ix *Index) Exists(fourCC, id uint32) bool {
	ci, ok := ix.byID[id]
	return ok && ci.FourCC == fourCC
}

// Body returns the materialized, decompressed bytes of chunk id, caching
// the result for the file's lifetime.
func (ix *Index) Body(id uint32) ([]byte, error) {
	if b, ok := ix.cache[id]; ok {
		return b, nil
	}
	if b, ok := ix.ilsCache[id]; ok {
		ix.cache[id] = b
		return b, nil
	}
	ci, ok := ix.byID[id]
	if !ok {
		return nil, fmt.Errorf("container: chunk %d: %w", id, ErrChunkMissing)
	}

	// ci.Offset always points at the chunk's data, past any 8-byte
	// {fourCC,length} header — the mmap backend adjusts for that header
	// at index-build time (spec.md §4.2), so Body never has to care which
	// backend produced ci.
	dataStart := int(ci.Offset)
	if dataStart+int(ci.Len) > len(ix.file) {
		return nil, &MalformedChunkError{ID: id, FourCC: ci.FourCC, Reason: "chunk extends past end of file"}
	}
	raw := ix.file[dataStart : dataStart+int(ci.Len)]

	body, err := decompress(id, raw, ci.CompressionID, ci.UncompressedLen)
	if err != nil {
		return nil, err
	}
	ix.cache[id] = body
	return body, nil
}

// decompress produces the uncompressed chunk body given its compression
// codec. NULL is returned as-is; ZLIB is inflated; SND is surfaced raw
// (spec.md §4.2: "not required, treat as opaque"); anything else
// surfaces the raw bytes alongside a diagnostic error value the caller
// may choose to ignore for non-fatal chunk kinds.
func decompress(id uint32, raw []byte, codec MoaID, uncompressedLen uint32) ([]byte, error) {
	switch codec {
	case MoaIDNull:
		return raw, nil
	case MoaIDZlib:
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, &DecompressFailedError{ID: id, Err: err}
		}
		defer zr.Close()
		out := make([]byte, 0, uncompressedLen)
		buf := bytes.NewBuffer(out)
		if _, err := io.Copy(buf, zr); err != nil {
			return nil, &DecompressFailedError{ID: id, Err: err}
		}
		return buf.Bytes(), nil
	case MoaIDSnd:
		return raw, nil
	default:
		return raw, &CompressionUnsupportedError{GUID: codec}
	}
}
