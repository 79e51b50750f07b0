package container

// FourCC builds a fourCC value from four ASCII bytes, stored the way it
// appears on disk: byte a is the most significant byte of the returned
// value, matching big-endian fourCC comparisons used throughout the
// RIFX format (unlike WebP's little-endian RIFF, where FourCC packs the
// bytes in the opposite order — see deepteams-webp/internal/container).
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
}

// FourCCString renders a fourCC value back to its 4-character form.
func FourCCString(fourcc uint32) string {
	return string([]byte{
		byte(fourcc >> 24),
		byte(fourcc >> 16),
		byte(fourcc >> 8),
		byte(fourcc),
	})
}

// Well-known container and chunk fourCCs.
var (
	FourCCRIFX = FourCC('R', 'I', 'F', 'X')
	FourCCXFIR = FourCC('X', 'F', 'I', 'R')

	FourCCMV93 = FourCC('M', 'V', '9', '3')
	FourCCMC95 = FourCC('M', 'C', '9', '5')
	FourCCFGDM = FourCC('F', 'G', 'D', 'M')
	FourCCFGDC = FourCC('F', 'G', 'D', 'C')

	FourCCImap = FourCC('i', 'm', 'a', 'p')
	FourCCMmap = FourCC('m', 'm', 'a', 'p')
	FourCCFree = FourCC('f', 'r', 'e', 'e')
	FourCCJunk = FourCC('j', 'u', 'n', 'k')

	FourCCFver = FourCC('F', 'v', 'e', 'r')
	FourCCFcdr = FourCC('F', 'c', 'd', 'r')
	FourCCABMP = FourCC('A', 'B', 'M', 'P')
	FourCCFGEI = FourCC('F', 'G', 'E', 'I')

	FourCCKeyStar = FourCC('K', 'E', 'Y', '*')
)
