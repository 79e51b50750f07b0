package container

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/deepteams/rifx/internal/stream"
)

// abmpEntry is one record of the Afterburner resource table.
type abmpEntry struct {
	resID           uint32
	offset          uint32
	compSize        uint32
	uncompSize      uint32
	compressionType uint32
	fourCC          uint32
}

// parseAfterburner indexes a compressed (codec FGDM/FGDC) file via its
// strict sequential Fver/Fcdr/ABMP/FGEI header, per spec.md §4.2.
func parseAfterburner(file []byte, order binary.ByteOrder) (*Index, error) {
	ix := newIndex(file, order)
	s := stream.New(file, order)
	if err := s.Seek(12); err != nil {
		return nil, err
	}

	if err := parseFver(s); err != nil {
		return nil, fmt.Errorf("container: Fver: %w", err)
	}

	compressionTable, err := parseFcdr(s)
	if err != nil {
		return nil, fmt.Errorf("container: Fcdr: %w", err)
	}

	entries, err := parseABMP(s)
	if err != nil {
		return nil, fmt.Errorf("container: ABMP: %w", err)
	}

	entriesByID := make(map[uint32]abmpEntry, len(entries))
	for _, e := range entries {
		entriesByID[e.resID] = e
		codec := MoaIDNull
		if int(e.compressionType) < len(compressionTable) {
			codec = compressionTable[e.compressionType]
		}
		ix.add(ChunkInfo{
			ID:              e.resID,
			FourCC:          e.fourCC,
			Len:             e.compSize,
			UncompressedLen: e.uncompSize,
			Offset:          e.offset,
			CompressionID:   codec,
		})
	}

	ilsBody, err := parseFGEI(s, entriesByID)
	if err != nil {
		return nil, fmt.Errorf("container: FGEI: %w", err)
	}

	if ilsBody != nil {
		ils := stream.New(ilsBody, order)
		ix.ilsCache = make(map[uint32][]byte)
		for ils.Remaining() > 0 {
			resID, err := ils.ReadVarInt()
			if err != nil {
				break
			}
			e, ok := entriesByID[resID]
			if !ok {
				break
			}
			body, err := ils.ReadBytes(int(e.len()))
			if err != nil {
				break
			}
			decoded, err := decompress(resID, body, ix.byID[resID].CompressionID, e.uncompSize)
			if err != nil {
				// Non-fatal: fall back to the raw (possibly still
				// compressed) bytes so later consumers can at least see
				// something, matching spec.md §7's "surface raw bytes
				// with a diagnostic" for unknown compression.
				decoded = body
			}
			ix.ilsCache[resID] = decoded
		}
	}

	return ix, nil
}

func (e abmpEntry) len() uint32 { return e.compSize }

// parseFver consumes the Fver chunk: varint(length), varint(version),
// optionally two extra varints (version >= 0x401) and a Pascal-like
// version string (version >= 0x501), padded to the declared length.
func parseFver(s *stream.Stream) error {
	fourCC, err := s.ReadU32()
	if err != nil {
		return err
	}
	if fourCC != FourCCFver {
		return &MalformedChunkError{FourCC: fourCC, Reason: "expected Fver chunk"}
	}
	length, err := s.ReadVarInt()
	if err != nil {
		return err
	}
	lengthFieldEnd := s.Pos()

	version, err := s.ReadVarInt()
	if err != nil {
		return err
	}
	if version >= 0x401 {
		if _, err := s.ReadVarInt(); err != nil {
			return err
		}
		if _, err := s.ReadVarInt(); err != nil {
			return err
		}
	}
	if version >= 0x501 {
		strLen, err := s.ReadVarInt()
		if err != nil {
			return err
		}
		if _, err := s.ReadBytes(int(strLen)); err != nil {
			return err
		}
	}

	return s.Seek(lengthFieldEnd + int(length))
}

// parseFcdr consumes the Fcdr chunk and returns the ordered list of
// compression-codec GUIDs it declares, indexed by their position (this is
// the compressionTypeIndex referenced by ABMP entries).
func parseFcdr(s *stream.Stream) ([]MoaID, error) {
	fourCC, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if fourCC != FourCCFcdr {
		return nil, &MalformedChunkError{FourCC: fourCC, Reason: "expected Fcdr chunk"}
	}
	length, err := s.ReadVarInt()
	if err != nil {
		return nil, err
	}
	raw, err := s.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	inflated, err := inflate(raw)
	if err != nil {
		return nil, err
	}

	is := stream.New(inflated, binary.BigEndian)
	count, err := is.ReadU16()
	if err != nil {
		return nil, err
	}
	ids := make([]MoaID, count)
	for i := range ids {
		b, err := is.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		id, err := MoaIDFromBytes(b)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	// Description strings follow, one per codec; they may be skipped.
	for i := 0; i < int(count); i++ {
		if _, err := is.ReadCString(); err != nil {
			break
		}
	}
	return ids, nil
}

// parseABMP consumes the ABMP chunk and returns its resource table.
func parseABMP(s *stream.Stream) ([]abmpEntry, error) {
	fourCC, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if fourCC != FourCCABMP {
		return nil, &MalformedChunkError{FourCC: fourCC, Reason: "expected ABMP chunk"}
	}
	length, err := s.ReadVarInt()
	if err != nil {
		return nil, err
	}
	bodyStart := s.Pos()
	if _, err := s.ReadVarInt(); err != nil { // ignored scratch field
		return nil, err
	}
	if _, err := s.ReadVarInt(); err != nil { // ignored scratch field
		return nil, err
	}
	if _, err := s.ReadVarInt(); err != nil { // uncompressedLen, unused here
		return nil, err
	}
	remaining := int(length) - (s.Pos() - bodyStart)
	raw, err := s.ReadBytes(remaining)
	if err != nil {
		return nil, err
	}
	inflated, err := inflate(raw)
	if err != nil {
		return nil, err
	}

	is := stream.New(inflated, binary.BigEndian)
	if _, err := is.ReadVarInt(); err != nil { // scratch
		return nil, err
	}
	if _, err := is.ReadVarInt(); err != nil { // scratch
		return nil, err
	}
	resCount, err := is.ReadVarInt()
	if err != nil {
		return nil, err
	}
	entries := make([]abmpEntry, 0, resCount)
	for i := uint32(0); i < resCount; i++ {
		resID, err := is.ReadVarInt()
		if err != nil {
			return nil, err
		}
		offset, err := is.ReadVarInt()
		if err != nil {
			return nil, err
		}
		compSize, err := is.ReadVarInt()
		if err != nil {
			return nil, err
		}
		uncompSize, err := is.ReadVarInt()
		if err != nil {
			return nil, err
		}
		compressionType, err := is.ReadVarInt()
		if err != nil {
			return nil, err
		}
		fourCC, err := is.ReadU32()
		if err != nil {
			return nil, err
		}
		entries = append(entries, abmpEntry{
			resID:           resID,
			offset:          offset,
			compSize:        compSize,
			uncompSize:      uncompSize,
			compressionType: compressionType,
			fourCC:          fourCC,
		})
	}
	return entries, nil
}

// parseFGEI consumes the FGEI chunk: a leading scratch varint, then the
// body. The entry with resId=2 is the ILS's own descriptor; its
// compSize is the length of the zlib-compressed initial load segment.
// Returns the inflated ILS bytes (nil if there's no resId=2 entry).
func parseFGEI(s *stream.Stream, entriesByID map[uint32]abmpEntry) ([]byte, error) {
	fourCC, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if fourCC != FourCCFGEI {
		return nil, &MalformedChunkError{FourCC: fourCC, Reason: "expected FGEI chunk"}
	}
	if _, err := s.ReadVarInt(); err != nil { // scratch
		return nil, err
	}

	ilsInfo, ok := entriesByID[2]
	if !ok {
		return nil, nil
	}
	raw, err := s.ReadBytes(int(ilsInfo.compSize))
	if err != nil {
		return nil, err
	}
	return inflate(raw)
}

func inflate(raw []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
