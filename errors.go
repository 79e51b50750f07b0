package rifx

import "errors"

var (
	errNoScriptContext = errors.New("rifx: cast has no Lctx/Lnam script context")
	errNoScriptSection = errors.New("rifx: script id not found in context section map")
	errNoMediaChunk    = errors.New("rifx: no media chunk found for member")
)
