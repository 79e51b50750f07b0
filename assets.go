package rifx

import (
	"fmt"
	"image"

	"github.com/deepteams/rifx/internal/bitmap"
	"github.com/deepteams/rifx/internal/chunks"
	"github.com/deepteams/rifx/internal/sound"
)

// AssetInfo describes one non-script cast member and decodes its media
// on demand.
type AssetInfo struct {
	MemberID   int
	MemberName string
	TypeName   string
	CastName   string

	movie *Movie
	cm    *castMember
}

// Assets enumerates every non-script cast member across every loaded
// cast library.
func (m *Movie) Assets() []*AssetInfo {
	var out []*AssetInfo
	for _, lib := range m.casts {
		for _, cm := range lib.members {
			if cm.cast.Type == chunks.MemberScript {
				continue
			}
			out = append(out, &AssetInfo{
				MemberID:   cm.memberID,
				MemberName: cm.cast.Info.Name,
				TypeName:   cm.cast.Type.String(),
				CastName:   lib.name,
				movie:      m,
				cm:         cm,
			})
		}
	}
	return out
}

// Raw returns the cast member's specific-data blob, undecoded.
func (a *AssetInfo) Raw() []byte { return a.cm.cast.SpecificData }

// Decoded decodes this asset's media, dispatching on its member type.
// Chunk misses for optional data return an error rather than aborting
// the load that produced this AssetInfo (spec.md §7): callers that don't
// need the decoded form can ignore the failure and still enumerate
// assets.
func (a *AssetInfo) Decoded() (any, error) {
	switch a.cm.cast.Type {
	case chunks.MemberBitmap:
		return a.decodeBitmap()
	case chunks.MemberText:
		return a.decodeText()
	case chunks.MemberSound:
		return a.decodeSound()
	case chunks.MemberPalette:
		return a.decodePalette()
	default:
		return nil, fmt.Errorf("rifx: no decoder for member type %s", a.cm.cast.Type)
	}
}

func (a *AssetInfo) findMedia(fourCC uint32) ([]byte, error) {
	if a.movie.keyTable == nil {
		return nil, errNoMediaChunk
	}
	id, ok := a.movie.keyTable.FindMedia(int32(a.cm.memberID), int32(a.cm.sectionID), fourCC)
	if !ok {
		return nil, errNoMediaChunk
	}
	return a.movie.idx.Body(uint32(id))
}

func (a *AssetInfo) decodeBitmap() (*image.RGBA, error) {
	info, err := bitmap.ParseInfo(a.cm.cast.SpecificData, a.movie.humanVersion)
	if err != nil {
		return nil, err
	}
	raw, err := a.findMedia(fourCCBITD)
	if err != nil {
		return nil, err
	}
	palette := bitmap.ResolvePalette(info.PaletteID, &paletteFinder{movie: a.movie})
	return bitmap.Decode(raw, info, a.movie.humanVersion, palette)
}

func (a *AssetInfo) decodeText() (string, error) {
	raw, err := a.findMedia(fourCCSTXT)
	if err != nil {
		return "", err
	}
	tc, err := chunks.ParseText(raw)
	if err != nil {
		return "", err
	}
	return tc.DisplayText(), nil
}

func (a *AssetInfo) decodeSound() ([]byte, error) {
	raw, err := a.findMedia(fourCCSnd)
	if err != nil {
		return nil, err
	}
	switch sound.DetectFormat(raw) {
	case sound.MacSND:
		return sound.DecodeSNDToWAV(raw)
	default:
		return raw, nil
	}
}

func (a *AssetInfo) decodePalette() ([]byte, error) {
	raw, err := a.findMedia(fourCCCLUT)
	if err != nil {
		return nil, err
	}
	pal := bitmap.ParseCLUT(raw)
	out := make([]byte, 0, len(pal)*3)
	for _, c := range pal {
		r, g, b, _ := c.RGBA()
		out = append(out, byte(r>>8), byte(g>>8), byte(b>>8))
	}
	return out, nil
}

// paletteFinder satisfies bitmap.PaletteFinder by trying a positive
// palette id first as a direct CLUT section/member id, falling back to
// the first CLUT chunk found anywhere in the file (spec.md §4.8's
// multi-strategy palette search).
type paletteFinder struct {
	movie *Movie
}

func (pf *paletteFinder) FindPalette(paletteID int32) ([]byte, bool) {
	if pf.movie.keyTable != nil {
		if id, ok := pf.movie.keyTable.Find(paletteID, fourCCCLUT); ok {
			if body, err := pf.movie.idx.Body(uint32(id)); err == nil {
				return body, true
			}
		}
	}
	if paletteID > 0 && pf.movie.idx.Exists(fourCCCLUT, uint32(paletteID)) {
		if body, err := pf.movie.idx.Body(uint32(paletteID)); err == nil {
			return body, true
		}
	}
	if id, ok := pf.movie.idx.First(fourCCCLUT); ok {
		if body, err := pf.movie.idx.Body(id); err == nil {
			return body, true
		}
	}
	return nil, false
}
