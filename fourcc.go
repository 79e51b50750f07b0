package rifx

import "github.com/deepteams/rifx/internal/container"

// Chunk fourCCs the facade dispatches on. internal/container only knows
// the top-level framing fourCCs (RIFX/mmap/Afterburner bookkeeping) and
// internal/chunks deliberately carries none of its own (spec.md §4.4's
// per-kind parsers are fourCC-agnostic) — this table is the one place
// that joins a fourCC to the parser that understands its body, the
// orchestration role SPEC_FULL.md reserves for the root package.
var (
	fourCCDRCF = container.FourCC('D', 'R', 'C', 'F')
	fourCCVWCF = container.FourCC('V', 'W', 'C', 'F')
	fourCCMCsL = container.FourCC('M', 'C', 's', 'L')
	fourCCCASStar = container.FourCC('C', 'A', 'S', '*')
	fourCCCASt = container.FourCC('C', 'A', 'S', 't')
	fourCCLctx = container.FourCC('L', 'c', 't', 'x')
	fourCCLctX = container.FourCC('L', 'c', 't', 'X')
	fourCCLnam = container.FourCC('L', 'n', 'a', 'm')
	fourCCLscr = container.FourCC('L', 's', 'c', 'r')
	fourCCBITD = container.FourCC('B', 'I', 'T', 'D')
	fourCCCLUT = container.FourCC('C', 'L', 'U', 'T')
	fourCCSTXT = container.FourCC('S', 'T', 'X', 'T')
	fourCCSnd  = container.FourCC('s', 'n', 'd', ' ')
)
