package domain

import (
	"fmt"
	"path"
	"strings"
)

// RegionFlags is the access bit set of a memory region.
type RegionFlags uint8

const (
	// FlagRead marks a readable region.
	FlagRead RegionFlags = 1 << iota
	// FlagWrite marks a writable region.
	FlagWrite
	// FlagExecute marks an executable region.
	FlagExecute
)

// String renders the flags as "rwx" with '-' for missing bits.
func (f RegionFlags) String() string {
	b := []byte("---")
	if f&FlagRead != 0 {
		b[0] = 'r'
	}
	if f&FlagWrite != 0 {
		b[1] = 'w'
	}
	if f&FlagExecute != 0 {
		b[2] = 'x'
	}
	return string(b)
}

// MemoryRegion is one entry of an execution context's memory map as reported
// upstream. It is externally owned and only ever read.
type MemoryRegion struct {
	Address     uint64
	Size        uint64
	Offset      uint64
	Flags       RegionFlags
	FileName    string
	SectionName string
}

// ModuleNode is a memory-mapped module of an execution context. It is bound
// to an index of the parent's memory map, not to the region's content: when
// the upstream array is reordered, the node at an index shows whatever region
// now occupies that index.
type ModuleNode struct {
	BaseNode

	index       int
	region      MemoryRegion
	regionValid bool
}

var (
	_ Node              = (*ModuleNode)(nil)
	_ MemoryMapListener = (*ModuleNode)(nil)
)

// NewModuleNode creates a module node bound to (parent, id, index).
func NewModuleNode(parent, id InternedString, index int) *ModuleNode {
	return &ModuleNode{
		BaseNode: NewBaseNode(id, parent, KindModule),
		index:    index,
	}
}

// Index returns the memory map index the node is bound to.
func (n *ModuleNode) Index() int { return n.index }

// Bind records the region currently found at the node's index.
func (n *ModuleNode) Bind(region MemoryRegion) {
	n.region = region
	n.regionValid = true
}

// Region returns the bound region and whether it is current.
func (n *ModuleNode) Region() (MemoryRegion, bool) {
	return n.region, n.regionValid
}

// OnMemoryMapChanged marks the bound region stale until the next reconciliation.
func (n *ModuleNode) OnMemoryMapChanged() {
	n.regionValid = false
}

// Column renders the value shown in the given module view column.
func (n *ModuleNode) Column(col ColumnID) string {
	r := n.region
	switch col {
	case ColumnName:
		if r.FileName == "" {
			return r.SectionName
		}
		return path.Base(strings.ReplaceAll(r.FileName, "\\", "/"))
	case ColumnFile:
		return r.FileName
	case ColumnAddress:
		return fmt.Sprintf("0x%08x", r.Address)
	case ColumnSize:
		return fmt.Sprintf("0x%x", r.Size)
	case ColumnFlags:
		return r.Flags.String()
	case ColumnOffset:
		return fmt.Sprintf("0x%x", r.Offset)
	case ColumnSection:
		return r.SectionName
	default:
		return ""
	}
}
