// Package render walks an extended tree bottom-up and dispatches every node
// to a render function chosen by node type. The output type is left to the
// function set; see package render/html for an HTML implementation.
package render

import (
	"errors"
	"fmt"

	"github.com/rgonek/extmd/macro"
	"github.com/rgonek/extmd/nav"
	"github.com/rgonek/extmd/tree"
)

var (
	// ErrMissingFunc is returned by New when a registered type has no render
	// function.
	ErrMissingFunc = errors.New("missing render function")
	// ErrUnregisteredFunc is returned by New for a function whose type is
	// not in the registry.
	ErrUnregisteredFunc = errors.New("render function for unregistered type")
	// ErrNoPlaceholder is returned by New when Options.Placeholder is nil.
	ErrNoPlaceholder = errors.New("placeholder function is required")
)

// Func renders one node given the already rendered output of its children.
type Func[T any] func(ctx *Context, n *tree.Node, children []T) T

// Options configures a Renderer.
type Options[T any] struct {
	// Registry lists the types the function set must cover. Defaults to
	// tree.Builtin().
	Registry *tree.Registry
	// Placeholder stands in for nodes whose type has no render function.
	Placeholder func(typ tree.Type) T
	// Safe enables the destination denylist.
	Safe bool
}

// Renderer holds a complete type to function table. It keeps no state
// between calls to Render.
type Renderer[T any] struct {
	funcs       map[tree.Type]Func[T]
	registry    *tree.Registry
	placeholder func(typ tree.Type) T
	safe        bool
}

// Result is the output of one render pass.
type Result[T any] struct {
	// Document is the output of the document node.
	Document T
	// Output holds the rendered top-level blocks in order, marker comments
	// excluded. Layout marker positions index into it.
	Output []T
	// Nav is nil when the document has no headings.
	Nav      []*nav.Node
	Warnings []tree.Warning
}

// New checks that funcs covers every registered type.
func New[T any](funcs map[tree.Type]Func[T], opts Options[T]) (*Renderer[T], error) {
	registry := opts.Registry
	if registry == nil {
		registry = tree.Builtin()
	}
	if opts.Placeholder == nil {
		return nil, ErrNoPlaceholder
	}

	var errs []error
	for _, typ := range registry.Types() {
		if fn, ok := funcs[typ]; !ok || fn == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingFunc, typ))
		}
	}
	for typ := range funcs {
		if !registry.Has(typ) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnregisteredFunc, typ))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	table := make(map[tree.Type]Func[T], len(funcs))
	for typ, fn := range funcs {
		table[typ] = fn
	}

	return &Renderer[T]{
		funcs:       table,
		registry:    registry,
		placeholder: opts.Placeholder,
		safe:        opts.Safe,
	}, nil
}

// Render walks t once, children before parents and left to right. Marker
// nodes found by macro.Extract are skipped. Each call starts with a fresh
// nav builder and anchor set.
func (r *Renderer[T]) Render(t *tree.Tree, markers macro.Markers) Result[T] {
	ctx := &Context{
		tree:     t,
		markers:  markers,
		safe:     r.safe,
		nav:      nav.NewBuilder(),
		anchors:  map[string]bool{},
		headings: map[tree.ID]HeadingInfo{},
	}

	root := t.Root()
	output := r.renderChildren(ctx, root.ID)
	document := r.dispatch(ctx, root.ID, output)

	return Result[T]{
		Document: document,
		Output:   output,
		Nav:      ctx.nav.Tree(),
		Warnings: ctx.warnings,
	}
}

func (r *Renderer[T]) renderChildren(ctx *Context, id tree.ID) []T {
	children := ctx.tree.Node(id).Children
	out := make([]T, 0, len(children))
	for _, child := range children {
		if ctx.markers.IsMarker(child) {
			continue
		}
		out = append(out, r.visit(ctx, child))
	}
	return out
}

func (r *Renderer[T]) visit(ctx *Context, id tree.ID) T {
	n := ctx.tree.Node(id)
	if n.Type == tree.TypeHeading {
		ctx.enterHeading(n)
	}
	children := r.renderChildren(ctx, id)
	return r.dispatch(ctx, id, children)
}

func (r *Renderer[T]) dispatch(ctx *Context, id tree.ID, children []T) T {
	n := ctx.tree.Node(id)
	ctx.node = n

	fn, ok := r.funcs[n.Type]
	if !ok || !r.registry.Has(n.Type) {
		ctx.Warn(tree.WarningUnknownNode, fmt.Sprintf("no render function for node type %q", n.Type))
		return r.placeholder(n.Type)
	}

	if n.Type == tree.TypeHeading {
		info := ctx.headings[id]
		ctx.nav.Add(info.Level, info.Anchor, info.Title)
	}

	return fn(ctx, n, children)
}
