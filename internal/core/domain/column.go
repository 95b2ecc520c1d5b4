package domain

import (
	"cmp"
	"strings"

	"go.trai.ch/zerr"
)

// ColumnID identifies a column of the module view. The identifiers are
// stable and double as sort and filter keys.
type ColumnID string

// Module view columns.
const (
	ColumnName    ColumnID = "Name"
	ColumnFile    ColumnID = "File"
	ColumnAddress ColumnID = "Address"
	ColumnSize    ColumnID = "Size"
	ColumnFlags   ColumnID = "Flags"
	ColumnOffset  ColumnID = "Offset"
	ColumnSection ColumnID = "Section"
)

// ModuleColumns returns every module view column in display order.
func ModuleColumns() []ColumnID {
	return []ColumnID{
		ColumnName,
		ColumnFile,
		ColumnAddress,
		ColumnSize,
		ColumnFlags,
		ColumnOffset,
		ColumnSection,
	}
}

// DefaultModuleColumns returns the columns visible by default.
func DefaultModuleColumns() []ColumnID {
	return []ColumnID{ColumnName, ColumnFile, ColumnAddress, ColumnSize}
}

// ParseColumn resolves a column name, ignoring case.
func ParseColumn(name string) (ColumnID, error) {
	for _, col := range ModuleColumns() {
		if strings.EqualFold(string(col), strings.TrimSpace(name)) {
			return col, nil
		}
	}
	return "", zerr.With(ErrUnknownColumn, "column", name)
}

// ParseColumns resolves a list of column names, keeping the given order and
// dropping duplicates. An empty list yields the default columns.
func ParseColumns(names []string) ([]ColumnID, error) {
	if len(names) == 0 {
		return DefaultModuleColumns(), nil
	}
	seen := make(map[ColumnID]bool, len(names))
	cols := make([]ColumnID, 0, len(names))
	for _, name := range names {
		col, err := ParseColumn(name)
		if err != nil {
			return nil, err
		}
		if seen[col] {
			continue
		}
		seen[col] = true
		cols = append(cols, col)
	}
	return cols, nil
}

// CompareModules orders two module nodes by the value of a column. Numeric
// columns compare numerically, the others lexically.
func CompareModules(a, b *ModuleNode, col ColumnID) int {
	ra, rb := a.region, b.region
	switch col {
	case ColumnAddress:
		return cmp.Compare(ra.Address, rb.Address)
	case ColumnSize:
		return cmp.Compare(ra.Size, rb.Size)
	case ColumnOffset:
		return cmp.Compare(ra.Offset, rb.Offset)
	case ColumnFlags:
		return cmp.Compare(ra.Flags, rb.Flags)
	default:
		return strings.Compare(a.Column(col), b.Column(col))
	}
}
