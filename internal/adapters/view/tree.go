// Package view renders the session tree and streams child set changes.
package view

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/xlab/treeprint"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/ui/output"
	"go.trai.ch/tcfview/internal/ui/style"
)

// RootLabel is the label of the tree root.
const RootLabel = "session"

const columnGap = "  "

// TreeOptions selects what RenderTree prints.
type TreeOptions struct {
	// Columns are the module columns to show, the defaults when empty.
	Columns []domain.ColumnID
	// SortBy orders modules by a column instead of their sort position.
	SortBy domain.ColumnID
	// Descending reverses the SortBy order.
	Descending bool
}

// RenderTree writes the snapshot as a tree.
func RenderTree(w io.Writer, snap domain.Snapshot, opts TreeOptions) error {
	out := output.New(w)
	tree := treeprint.NewWithRoot(RootLabel)
	for _, p := range snap.Parents {
		branch := tree.AddBranch(parentLabel(out, p))
		switch {
		case p.Pending:
			branch.AddNode(output.Colorize(out, "(pending)", string(style.Slate)))
		case p.Err != nil:
			branch.AddNode(output.Colorize(out, style.Cross+" "+p.Err.Error(), string(style.Red)))
		}
		if p.Pending {
			continue
		}
		switch p.Kind {
		case domain.KindContext:
			addModules(out, branch, p.Children, opts)
		case domain.KindExpressions:
			addExpressions(out, branch, p.Children)
		}
	}
	_, err := io.WriteString(w, tree.String())
	return err
}

func parentLabel(out *termenv.Output, p domain.ParentSnapshot) string {
	label := p.Label
	if p.Kind == domain.KindContext && label != p.ID.String() {
		label = fmt.Sprintf("%s (%s)", label, p.ID)
	}
	return out.String(label).Bold().String()
}

func addModules(out *termenv.Output, branch treeprint.Tree, nodes []domain.Node, opts TreeOptions) {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = domain.DefaultModuleColumns()
	}

	modules := make([]*domain.ModuleNode, 0, len(nodes))
	for _, n := range nodes {
		if m, ok := n.(*domain.ModuleNode); ok {
			modules = append(modules, m)
		}
	}
	if opts.SortBy != "" {
		slices.SortStableFunc(modules, func(a, b *domain.ModuleNode) int {
			c := domain.CompareModules(a, b, opts.SortBy)
			if opts.Descending {
				return -c
			}
			return c
		})
	}

	rows := make([][]string, 0, len(modules))
	widths := make([]int, len(columns))
	for _, m := range modules {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = m.Column(col)
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
		rows = append(rows, row)
	}

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			if j < len(row)-1 {
				cell = runewidth.FillRight(cell, widths[j])
			}
			cells[j] = cell
		}
		line := strings.Join(cells, columnGap)
		if modules[i].Repositioned() {
			line += " " + output.Colorize(out, style.Tilde, string(style.Yellow))
		}
		branch.AddNode(line)
	}
}

func addExpressions(out *termenv.Output, branch treeprint.Tree, nodes []domain.Node) {
	for _, n := range nodes {
		e, ok := n.(*domain.ExpressionNode)
		if !ok {
			continue
		}
		branch.AddNode(expressionLine(out, e))
	}
}

func expressionLine(out *termenv.Output, e *domain.ExpressionNode) string {
	if e.IsPlaceholder() {
		return output.Colorize(out, style.Plus+" add expression", string(style.Slate))
	}
	if !e.Enabled() {
		return output.Colorize(out, style.Circle+" "+e.Script(), string(style.Slate))
	}
	line := output.Colorize(out, style.Dot, string(style.Green)) + " " + e.Script()
	if value, typeName, ok := e.Value(); ok {
		line += " = " + value
		if typeName != "" {
			line += output.Colorize(out, " ("+typeName+")", string(style.Slate))
		}
	}
	return line
}
