// Package chunks implements one parser per known RIFX chunk kind: imap/
// mmap bookkeeping lives in internal/container, everything else — config,
// cast lists, cast members, script name/context tables, and the KEY*
// join table — lives here.
package chunks

// HumanVersion maps an internal Director version word (as stored in a
// DRCF/VWCF config chunk) to the human-readable version number, per
// spec.md §6. The table is monotonic in its boundaries.
func HumanVersion(internal uint16) int {
	switch {
	case internal >= 1951:
		return 1200
	case internal >= 1922:
		return 1150
	case internal >= 1921:
		return 1100
	case internal >= 1851:
		return 1000
	case internal >= 1700:
		return 850
	case internal >= 1410:
		return 800
	case internal >= 1224:
		return 700
	case internal >= 1218:
		return 600
	case internal >= 1201:
		return 500
	case internal >= 1117:
		return 404
	case internal >= 1115:
		return 400
	case internal >= 1029:
		return 310
	case internal >= 1028:
		return 300
	default:
		return 200
	}
}

// DotSyntaxDefault reports whether dot-syntax is the default Lingo
// source rendering for a given human version (>= 700, spec.md §6).
func DotSyntaxDefault(humanVersion int) bool {
	return humanVersion >= 700
}
