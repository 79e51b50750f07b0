package container

import "github.com/google/uuid"

// MoaID is a 16-byte GUID identifying a chunk's compression codec. It
// wraps uuid.UUID (itself a [16]byte) for parsing and equality against
// the well-known codec identifiers below — this is the one concrete home
// for github.com/google/uuid in this module: everything else here reads
// and compares fixed GUIDs, never generates new ones.
type MoaID uuid.UUID

// Well-known compression codec GUIDs. Only NULL and ZLIB are required to
// be implemented (spec.md §3); SND and FONTMAP are recognized but treated
// as opaque/unsupported.
var (
	MoaIDNull     = MoaID(uuid.MustParse("00000000-0000-0000-0000-000000000000"))
	MoaIDZlib     = MoaID(uuid.MustParse("ac99982e-3245-11d1-9979-0000f875c9d5"))
	MoaIDSnd      = MoaID(uuid.MustParse("7204a889-afd0-11cf-a7e8-0020afd7a0bd"))
	MoaIDFontMap  = MoaID(uuid.MustParse("4c4e5089-af5c-11cf-a7e8-0020afd7a0bd"))
)

// MoaIDFromBytes parses a 16-byte GUID in the order it appears on disk.
func MoaIDFromBytes(b []byte) (MoaID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return MoaID{}, err
	}
	return MoaID(u), nil
}

func (m MoaID) String() string { return uuid.UUID(m).String() }

// Name returns a short human-readable name for well-known codecs, or
// "unknown" otherwise.
func (m MoaID) Name() string {
	switch m {
	case MoaIDNull:
		return "NULL"
	case MoaIDZlib:
		return "ZLIB"
	case MoaIDSnd:
		return "SND"
	case MoaIDFontMap:
		return "FONTMAP"
	default:
		return "unknown"
	}
}

// Supported reports whether this package can decompress chunks carrying
// this codec GUID.
func (m MoaID) Supported() bool {
	return m == MoaIDNull || m == MoaIDZlib
}
