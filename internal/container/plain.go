package container

import (
	"encoding/binary"
	"fmt"

	"github.com/deepteams/rifx/internal/stream"
)

// mmapEntry is one record of the plain memory-map chunk table.
type mmapEntry struct {
	fourCC uint32
	len    uint32
	offset uint32
	flags  uint32
	next   uint32
}

// parsePlain indexes a plain (codec MV93/MC95) file via its "imap"/"mmap"
// chunk table, per spec.md §4.2.
//
//	Read `imap` at offset 12 to obtain mmapOffset. Seek there, verify
//	`mmap` fourCC, read the mmap header, then chunkCountUsed entries.
//	Index entry i's position becomes its id. Skip free/junk entries.
//	Compression is NULL for every entry; uncompressedLen = len.
func parsePlain(file []byte, order binary.ByteOrder) (*Index, error) {
	ix := newIndex(file, order)

	s := stream.New(file, order)
	if err := s.Seek(12); err != nil {
		return nil, fmt.Errorf("container: seeking to imap: %w", err)
	}

	imapFourCC, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if imapFourCC != FourCCImap {
		return nil, &MalformedChunkError{FourCC: imapFourCC, Reason: "expected imap chunk at offset 12"}
	}
	if _, err := s.ReadU32(); err != nil { // imap chunk length, unused
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // memoryMapCount, unused — mmap header repeats it
		return nil, err
	}
	mmapOffset, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	if err := s.Seek(int(mmapOffset)); err != nil {
		return nil, fmt.Errorf("container: seeking to mmap: %w", err)
	}
	mmapFourCC, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if mmapFourCC != FourCCMmap {
		return nil, &MalformedChunkError{FourCC: mmapFourCC, Reason: "expected mmap chunk"}
	}
	if _, err := s.ReadU32(); err != nil { // mmap chunk length, unused
		return nil, err
	}

	headerLength, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	entryLength, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadI32(); err != nil { // chunkCountMax, unused
		return nil, err
	}
	chunkCountUsed, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadI32(); err != nil { // junkHead, unused
		return nil, err
	}
	if _, err := s.ReadI32(); err != nil { // junkHead2, unused
		return nil, err
	}
	if _, err := s.ReadI32(); err != nil { // freeHead, unused
		return nil, err
	}

	// headerLength/entryLength describe the on-disk record sizes; the
	// fixed-field layout above is D4-D12 stable, but skip to the declared
	// entries offset defensively in case of future padding.
	if err := s.Seek(int(mmapOffset) + 8 + int(headerLength)); err != nil {
		return nil, err
	}

	for i := int32(0); i < chunkCountUsed; i++ {
		entryStart := s.Pos()
		fourCC, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		length, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		offset, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		if _, err := s.ReadU32(); err != nil { // flags, unused
			return nil, err
		}
		if _, err := s.ReadU32(); err != nil { // unk/_pad, unused
			return nil, err
		}
		if _, err := s.ReadU32(); err != nil { // next, unused
			return nil, err
		}

		if fourCC != FourCCFree && fourCC != FourCCJunk {
			ix.add(ChunkInfo{
				ID:              uint32(i),
				FourCC:          fourCC,
				Len:             length,
				UncompressedLen: length,
				Offset:          offset + 8, // skip the chunk's own {fourCC,length} header
				CompressionID:   MoaIDNull,
			})
		}

		if err := s.Seek(entryStart + int(entryLength)); err != nil {
			return nil, err
		}
	}

	return ix, nil
}
