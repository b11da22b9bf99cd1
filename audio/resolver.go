package audio

const (
	keyCtrlC = 3
	keyCtrlD = 4
)

// Resolver turns key codes into voice triggers.
type Resolver struct {
	layout *Layout
	engine *Engine
}

func NewResolver(layout *Layout, engine *Engine) *Resolver {
	if engine.NumVoices() != len(layout.Pitches) {
		panic("resolver: engine and layout have a different number of voices")
	}
	return &Resolver{layout: layout, engine: engine}
}

// Press triggers the voice bound to code. Unbound codes are ignored.
func (r *Resolver) Press(code int) (int, bool) {
	v, ok := r.layout.Lookup(code)
	if !ok {
		return 0, false
	}
	r.engine.Trigger(v)
	return v, true
}

// IsQuit reports whether code ends the input loop. Besides escape this
// includes ctrl-c and ctrl-d, which raw mode delivers as plain bytes.
func IsQuit(code int) bool {
	return code == KeyEscape || code == keyCtrlC || code == keyCtrlD
}
