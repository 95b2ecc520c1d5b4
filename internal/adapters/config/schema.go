package config

// SessionFile represents the structure of a session file.
type SessionFile struct {
	Version     string          `yaml:"version" toml:"version"`
	Contexts    []ContextDTO    `yaml:"contexts" toml:"contexts"`
	Expressions []ExpressionDTO `yaml:"expressions" toml:"expressions"`
	Columns     []string        `yaml:"columns" toml:"columns"`
	Positions   map[string]int  `yaml:"positions" toml:"positions"`
}

// ContextDTO represents an execution context in the session file.
type ContextDTO struct {
	ID      string      `yaml:"id" toml:"id"`
	Name    string      `yaml:"name" toml:"name"`
	Latency string      `yaml:"latency" toml:"latency"`
	Error   string      `yaml:"error" toml:"error"`
	Regions []RegionDTO `yaml:"regions" toml:"regions"`
}

// RegionDTO represents one memory map entry of a context.
type RegionDTO struct {
	File    string   `yaml:"file" toml:"file"`
	Address uint64   `yaml:"address" toml:"address"`
	Size    uint64   `yaml:"size" toml:"size"`
	Offset  uint64   `yaml:"offset" toml:"offset"`
	Flags   []string `yaml:"flags" toml:"flags"`
	Section string   `yaml:"section" toml:"section"`
}

// ExpressionDTO represents a configured expression.
type ExpressionDTO struct {
	Text    string `yaml:"text" toml:"text"`
	Enabled *bool  `yaml:"enabled" toml:"enabled"`
}
