package rifx

import (
	"github.com/deepteams/rifx/internal/chunks"
	"github.com/deepteams/rifx/internal/lingo"
)

// ScriptInfo describes one Script cast member and lazily decompiles its
// bytecode on first access to either text accessor.
type ScriptInfo struct {
	CastName   string
	MemberID   int
	MemberName string
	ScriptType chunks.ScriptType

	movie *Movie
	lib   *castLib
	cm    *castMember

	sast    *lingo.ScriptAST
	sastErr error
	decoded bool
}

// Scripts enumerates every Script cast member across every loaded cast
// library.
func (m *Movie) Scripts() []*ScriptInfo {
	var out []*ScriptInfo
	for _, lib := range m.casts {
		for _, cm := range lib.members {
			if cm.cast.Type != chunks.MemberScript {
				continue
			}
			out = append(out, &ScriptInfo{
				CastName:   lib.name,
				MemberID:   cm.memberID,
				MemberName: cm.cast.Info.Name,
				ScriptType: cm.cast.ScriptType,
				movie:      m,
				lib:        lib,
				cm:         cm,
			})
		}
	}
	return out
}

// ensureDecoded resolves and lifts this script's bytecode exactly once.
func (si *ScriptInfo) ensureDecoded() {
	if si.decoded {
		return
	}
	si.decoded = true

	if si.lib.scriptCtx == nil || si.lib.names == nil {
		si.sastErr = errNoScriptContext
		return
	}
	scriptID := int(si.cm.cast.Info.ScriptID)
	sectionID, ok := si.lib.scriptCtx.Section(scriptID)
	if !ok {
		si.sastErr = errNoScriptSection
		return
	}
	body, err := si.movie.idx.Body(uint32(sectionID))
	if err != nil {
		si.sastErr = err
		return
	}
	script, err := lingo.ParseScript(body, si.movie.humanVersion)
	if err != nil {
		si.sastErr = err
		return
	}
	lifter := lingo.NewLifter(script, si.lib.names)
	sast, err := lifter.LiftScript()
	si.movie.warnings = append(si.movie.warnings, lifter.Warnings...)
	if err != nil {
		si.sastErr = err
		return
	}
	si.sast = sast
}

// BytecodeText renders this script's bytecode-decompiled Lingo source.
func (si *ScriptInfo) BytecodeText(le LineEnding, dotSyntax bool) string {
	si.ensureDecoded()
	if si.sastErr != nil {
		return "-- ERROR: " + si.sastErr.Error()
	}
	w := &lingo.Writer{Dot: dotSyntax}
	return le.apply(w.WriteScript(si.sast))
}

// LingoText renders this script's source: the cast member's embedded
// script text when the file carries one (common for pre-D5 files saved
// with source retained), falling back to the bytecode-decompiled
// rendering otherwise.
func (si *ScriptInfo) LingoText(le LineEnding, dotSyntax bool) string {
	if si.cm.cast.Info.ScriptText != "" {
		return le.apply(chunks.MacRomanToUTF8(si.cm.cast.Info.ScriptText))
	}
	return si.BytecodeText(le, dotSyntax)
}
