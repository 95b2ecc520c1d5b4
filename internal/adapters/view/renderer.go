package view

import (
	"io"
	"strconv"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/tcfview/internal/ui/output"
	"go.trai.ch/tcfview/internal/ui/style"
)

var _ ports.ChildrenListener = (*Renderer)(nil)

// Renderer prints one line per child change. Output goes through a
// ChangeBatcher, so a burst of commits reaches the writer in one write with
// the lines of each parent kept together.
type Renderer struct {
	out     *termenv.Output
	batcher *ChangeBatcher
	nodes   ports.NodeRegistry

	mu     sync.Mutex
	writer io.Writer
	errs   map[domain.InternedString]string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRegistry lets the renderer show the new position of moved children.
func WithRegistry(r ports.NodeRegistry) RendererOption {
	return func(rd *Renderer) { rd.nodes = r }
}

// NewRenderer creates a renderer writing to w. Close must be called to flush.
func NewRenderer(w io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:    output.New(w),
		writer: w,
		errs:   make(map[domain.InternedString]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.batcher = NewChangeBatcher(DefaultMaxLines, DefaultInterval, r.flush)
	return r
}

// SetRegistry sets the registry used to resolve moved children.
func (r *Renderer) SetRegistry(nodes ports.NodeRegistry) {
	r.nodes = nodes
}

// ChildrenChanged renders a commit. An error line is printed when the stored
// error appears or changes, a recovery line when it clears.
func (r *Renderer) ChildrenChanged(delta domain.ChildDelta) {
	lines := make([]string, 0, len(delta.Removed)+len(delta.Added)+len(delta.Changed)+1)
	parent := delta.Parent.String()

	for _, id := range delta.Removed {
		lines = append(lines, output.Colorize(r.out, style.Minus+" "+id.String(), string(style.Red)))
	}
	for _, id := range delta.Added {
		lines = append(lines, output.Colorize(r.out, style.Plus+" "+id.String(), string(style.Green)))
	}
	for _, id := range delta.Changed {
		line := style.Tilde + " " + id.String()
		if n, ok := r.lookup(id); ok {
			line += " @" + strconv.Itoa(n.SortPosition())
		}
		lines = append(lines, output.Colorize(r.out, line, string(style.Yellow)))
	}

	r.mu.Lock()
	prev, hadErr := r.errs[delta.Parent]
	switch {
	case delta.Err != nil && prev != delta.Err.Error():
		r.errs[delta.Parent] = delta.Err.Error()
		lines = append(lines, output.Colorize(r.out, style.Cross+" "+parent+": "+delta.Err.Error(), string(style.Red)))
	case delta.Err == nil && hadErr:
		delete(r.errs, delta.Parent)
		lines = append(lines, output.Colorize(r.out, style.Check+" "+parent+": recovered", string(style.Green)))
	}
	r.mu.Unlock()

	_ = r.batcher.Add(delta.Parent, lines...)
}

// Flush writes buffered lines now.
func (r *Renderer) Flush() { r.batcher.Flush() }

// Close flushes and stops the renderer.
func (r *Renderer) Close() error { return r.batcher.Close() }

func (r *Renderer) lookup(id domain.InternedString) (domain.Node, bool) {
	if r.nodes == nil {
		return nil, false
	}
	return r.nodes.Node(id)
}

func (r *Renderer) flush(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.writer.Write(data)
}
