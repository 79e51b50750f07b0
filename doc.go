// Package rifx implements a reader for Adobe/Macromedia Director movie
// files (RIFX containers: DIR/DXR/DCR/CCT/CXT/CST) and a decompiler that
// reconstructs human-readable Lingo source from the compiled bytecode
// stored inside them.
//
// The package supports:
//   - Plain ("MV93"/"MC95") and Afterburner ("FGDM"/"FGDC") container
//     formats, the latter with per-chunk zlib compression.
//   - Lingo bytecode decompilation into an abstract syntax tree, with
//     verbose and dot-syntax source output.
//   - Decoding of embedded media: indexed/true-color bitmaps (BITD),
//     CLUT palettes, Mac SND/AIFF/WAV sound resources, and Mac-Roman
//     text records.
//
// Basic usage:
//
//	movie, err := rifx.Load(data)
//	for _, s := range movie.Scripts() {
//		fmt.Println(s.LingoText(rifx.LineEndingLF, false))
//	}
//
// Writing new Director files, executing Lingo, and full Score/Frame/
// Channel playback are out of scope; see internal/score for the limited
// scaffolding that is implemented.
package rifx
