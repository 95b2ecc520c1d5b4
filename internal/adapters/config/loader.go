// Package config provides the session file loader for tcfview.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only session file version understood by the loader.
const SupportedVersion = "1"

// Format is the encoding of a session file.
type Format int

const (
	// FormatYAML is the default session file encoding.
	FormatYAML Format = iota
	// FormatTOML is selected by the .toml extension.
	FormatTOML
)

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

var _ ports.SessionLoader = (*Loader)(nil)

// Loader implements ports.SessionLoader for YAML and TOML session files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new session loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads and validates the session file at path.
func (l *Loader) Load(path string) (*domain.Session, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	session, err := ParseFormat(data, FormatOf(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if l.Logger != nil {
		l.Logger.Debug("session loaded",
			"path", path,
			"contexts", len(session.Contexts),
			"expressions", len(session.Expressions),
		)
	}
	return session, nil
}

// Parse decodes and validates a YAML session document.
func Parse(data []byte) (*domain.Session, error) {
	return ParseFormat(data, FormatYAML)
}

// ParseFormat decodes and validates a session document of the given format.
func ParseFormat(data []byte, format Format) (*domain.Session, error) {
	var file SessionFile
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if file.Version != SupportedVersion {
		return nil, zerr.With(domain.ErrUnsupportedVersion, "version", file.Version)
	}

	contexts, err := convertContexts(file.Contexts)
	if err != nil {
		return nil, err
	}

	columns, err := convertColumns(file.Columns)
	if err != nil {
		return nil, err
	}

	for id, pos := range file.Positions {
		if pos < 0 {
			return nil, zerr.With(zerr.With(domain.ErrInvalidPosition, "node", id), "position", pos)
		}
	}

	return &domain.Session{
		Contexts:    contexts,
		Expressions: convertExpressions(file.Expressions),
		Columns:     columns,
		Positions:   file.Positions,
	}, nil
}

func convertContexts(dtos []ContextDTO) ([]domain.ContextSpec, error) {
	seen := make(map[string]bool, len(dtos))
	specs := make([]domain.ContextSpec, 0, len(dtos))
	for i, dto := range dtos {
		if dto.ID == "" {
			return nil, zerr.With(domain.ErrMissingContextID, "index", i)
		}
		if seen[dto.ID] {
			return nil, zerr.With(domain.ErrDuplicateContextID, "context", dto.ID)
		}
		if reservedContextID(dto.ID) {
			return nil, zerr.With(zerr.With(domain.ErrReservedContextID, "context", dto.ID), "index", i)
		}
		seen[dto.ID] = true

		spec := domain.ContextSpec{
			ID:         dto.ID,
			Name:       dto.Name,
			FetchError: dto.Error,
		}
		if dto.Latency != "" {
			latency, err := time.ParseDuration(dto.Latency)
			if err != nil || latency < 0 {
				return nil, zerr.With(zerr.With(domain.ErrInvalidLatency, "context", dto.ID), "latency", dto.Latency)
			}
			spec.Latency = latency
		}

		for _, r := range dto.Regions {
			flags, err := parseFlags(r.Flags)
			if err != nil {
				return nil, zerr.With(err, "context", dto.ID)
			}
			spec.Regions = append(spec.Regions, domain.MemoryRegion{
				Address:     r.Address,
				Size:        r.Size,
				Offset:      r.Offset,
				Flags:       flags,
				FileName:    r.File,
				SectionName: r.Section,
			})
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseFlags(names []string) (domain.RegionFlags, error) {
	var flags domain.RegionFlags
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "read", "r":
			flags |= domain.FlagRead
		case "write", "w":
			flags |= domain.FlagWrite
		case "exec", "x":
			flags |= domain.FlagExecute
		default:
			return 0, zerr.With(domain.ErrInvalidRegionFlag, "flag", name)
		}
	}
	return flags, nil
}

func convertColumns(names []string) ([]domain.ColumnID, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return domain.ParseColumns(names)
}

// convertExpressions drops blank entries. Expressions are enabled unless the
// file says otherwise.
func convertExpressions(dtos []ExpressionDTO) []domain.ExpressionSpec {
	specs := make([]domain.ExpressionSpec, 0, len(dtos))
	for _, dto := range dtos {
		if strings.TrimSpace(dto.Text) == "" {
			continue
		}
		enabled := true
		if dto.Enabled != nil {
			enabled = *dto.Enabled
		}
		specs = append(specs, domain.ExpressionSpec{Text: dto.Text, Enabled: enabled})
	}
	return specs
}

// reservedContextID reports whether id names the expression list or has the
// shape of a module or expression identity.
func reservedContextID(id string) bool {
	if id == domain.ExpressionsID {
		return true
	}
	_, prefix, _, ok := domain.ParseChildID(id)
	return ok && (prefix == domain.ModulePrefix || prefix == domain.ExpressionPrefix)
}
