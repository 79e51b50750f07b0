package rifx

import (
	"encoding/binary"
	"fmt"

	"github.com/deepteams/rifx/internal/chunks"
	"github.com/deepteams/rifx/internal/container"
)

// LineEnding selects the newline convention used when rendering Lingo
// source text.
type LineEnding int

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
)

func (le LineEnding) apply(s string) string {
	if le != LineEndingCRLF {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, '\r')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Movie is a loaded Director file: the chunk index plus every structure
// needed to enumerate scripts and assets. It owns the raw file bytes
// exclusively; every component below borrows, never mutates, them
// (spec.md §5's shared-resource policy).
type Movie struct {
	idx          *container.Index
	order        binary.ByteOrder
	isCastFile   bool
	config       *chunks.Config
	humanVersion int
	keyTable     *chunks.KeyTable
	casts        []*castLib
	warnings     []error
}

// Load parses data as a RIFX/XFIR Director movie or cast file.
func Load(data []byte) (*Movie, error) {
	order, err := container.ByteOrderOf(data)
	if err != nil {
		return nil, err
	}
	idx, err := container.New(data)
	if err != nil {
		return nil, err
	}

	codec := order.Uint32(data[8:12])
	m := &Movie{
		idx:        idx,
		order:      order,
		isCastFile: codec == container.FourCCMC95,
	}

	configID, ok := idx.First(fourCCVWCF)
	if !ok {
		configID, ok = idx.First(fourCCDRCF)
	}
	if !ok {
		return nil, fmt.Errorf("rifx: no config chunk found: %w", container.ErrChunkMissing)
	}
	body, err := idx.Body(configID)
	if err != nil {
		return nil, err
	}
	cfg, err := chunks.ParseConfig(body)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		m.warn(err)
	}
	m.config = cfg
	m.humanVersion = cfg.HumanVersion()

	if keyID, ok := idx.First(container.FourCCKeyStar); ok {
		kt, err := m.parseKeyTable(keyID)
		if err != nil {
			m.warn(err)
		} else {
			m.keyTable = kt
		}
	}

	if err := m.loadCasts(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Movie) parseKeyTable(id uint32) (*chunks.KeyTable, error) {
	body, err := m.idx.Body(id)
	if err != nil {
		return nil, err
	}
	return chunks.ParseKeyTable(body)
}

func (m *Movie) warn(err error) {
	if err != nil {
		m.warnings = append(m.warnings, err)
	}
}

// Warnings returns every non-fatal issue accumulated while loading and
// decompiling (spec.md §7: unknown opcodes and out-of-range name lookups
// never abort the load).
func (m *Movie) Warnings() []error { return m.warnings }

// StageSize returns the stage's width and height in pixels.
func (m *Movie) StageSize() (width, height int) {
	return m.config.StageWidth(), m.config.StageHeight()
}

// FrameRate returns the movie's configured frame rate.
func (m *Movie) FrameRate() int { return int(m.config.FrameRate) }

// IsCastFile reports whether the loaded file is a standalone cast
// library (codec MC95) rather than a movie (codec MV93).
func (m *Movie) IsCastFile() bool { return m.isCastFile }

// Version returns the human-readable Director version (spec.md §6).
func (m *Movie) Version() int { return m.humanVersion }
