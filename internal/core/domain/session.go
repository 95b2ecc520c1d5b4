package domain

import "time"

// Session describes a debug session as loaded from a session file: its
// execution contexts with their memory maps, the registered expressions and
// view preferences.
type Session struct {
	Contexts    []ContextSpec
	Expressions []ExpressionSpec
	Columns     []ColumnID
	// Positions holds manual sort positions keyed by node identity.
	Positions map[string]int
}

// ContextSpec describes one execution context.
type ContextSpec struct {
	ID   string
	Name string
	// Latency delays every memory map fetch for the context.
	Latency time.Duration
	// FetchError, when set, makes every memory map fetch fail with this message.
	FetchError string
	Regions    []MemoryRegion
}

// ExpressionSpec is a persisted or configured expression.
type ExpressionSpec struct {
	Text    string `msgpack:"text"`
	Enabled bool   `msgpack:"enabled"`
}

// Layout is user state that outlives a session: expressions added from the
// command line and manual module positions.
type Layout struct {
	Expressions []ExpressionSpec `msgpack:"expressions"`
	Positions   map[string]int   `msgpack:"positions"`
}

// MergedPositions returns session positions overridden by the layout's.
func MergedPositions(session *Session, layout *Layout) map[string]int {
	merged := make(map[string]int)
	if session != nil {
		for id, pos := range session.Positions {
			merged[id] = pos
		}
	}
	if layout != nil {
		for id, pos := range layout.Positions {
			merged[id] = pos
		}
	}
	return merged
}
