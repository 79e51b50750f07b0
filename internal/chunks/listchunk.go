package chunks

import (
	"github.com/deepteams/rifx/internal/stream"
)

// readListItems reads the common "list chunk" item-table shape used by
// several chunk kinds (MCsL, CastInfo): at byte offset dataOffset, a u16
// item count followed by (count+1) u32 byte offsets into an item blob
// that immediately follows the offset table; item i spans
// blob[offsets[i]:offsets[i+1]].
func readListItems(s *stream.Stream, dataOffset uint32) ([][]byte, error) {
	if err := s.Seek(int(dataOffset)); err != nil {
		return nil, err
	}
	count, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	offsets := make([]uint32, int(count)+1)
	for i := range offsets {
		v, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	blobStart := s.Pos()

	items := make([][]byte, count)
	for i := 0; i < int(count); i++ {
		start := blobStart + int(offsets[i])
		end := blobStart + int(offsets[i+1])
		if end < start {
			end = start
		}
		b, err := itemSlice(s, start, end)
		if err != nil {
			return nil, err
		}
		items[i] = b
	}
	return items, nil
}

func itemSlice(s *stream.Stream, start, end int) ([]byte, error) {
	if err := s.Seek(start); err != nil {
		return nil, err
	}
	return s.ReadBytes(end - start)
}

func pascalFromItem(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	n := int(b[0])
	if n+1 > len(b) {
		n = len(b) - 1
	}
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		runes[i] = rune(b[1+i])
	}
	return string(runes)
}

func rawString(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
