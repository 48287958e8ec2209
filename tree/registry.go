package tree

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	// ErrDuplicateType is returned when a type is registered twice.
	ErrDuplicateType = errors.New("node type already registered")
	// ErrDataMismatch is returned when a node carries data of the wrong shape.
	ErrDataMismatch = errors.New("node data does not match its type")
)

// Registry records the closed set of node types and the shape of the data
// each type carries.
type Registry struct {
	shapes map[Type]reflect.Type
	order  []Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{shapes: map[Type]reflect.Type{}}
}

// Register adds a type. shape is a zero value of the data variant, or nil for
// types without data.
func (r *Registry) Register(t Type, shape Data) error {
	if t == "" {
		return errors.New("node type must not be empty")
	}
	if _, exists := r.shapes[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t)
	}
	var rt reflect.Type
	if shape != nil {
		rt = reflect.TypeOf(shape)
	}
	r.shapes[t] = rt
	r.order = append(r.order, t)
	return nil
}

// Has reports whether t is registered.
func (r *Registry) Has(t Type) bool {
	_, ok := r.shapes[t]
	return ok
}

// Shape returns the data type registered for t. The reflect.Type is nil for
// types that carry no data.
func (r *Registry) Shape(t Type) (reflect.Type, bool) {
	rt, ok := r.shapes[t]
	return rt, ok
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []Type {
	out := make([]Type, len(r.order))
	copy(out, r.order)
	return out
}

// Sorted returns the registered types in lexical order.
func (r *Registry) Sorted() []Type {
	out := r.Types()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate checks that the data of n matches the shape registered for its
// type. Unregistered types are not an error here; the renderer substitutes a
// placeholder for them.
func (r *Registry) Validate(n *Node) error {
	rt, ok := r.shapes[n.Type]
	if !ok {
		return nil
	}
	if rt == nil {
		if n.Data != nil {
			return fmt.Errorf("%w: %s carries %T, expected no data", ErrDataMismatch, n.Type, n.Data)
		}
		return nil
	}
	if n.Data == nil || reflect.TypeOf(n.Data) != rt {
		return fmt.Errorf("%w: %s carries %T, expected %s", ErrDataMismatch, n.Type, n.Data, rt)
	}
	return nil
}

// ValidateTree validates every node of t.
func (r *Registry) ValidateTree(t *Tree) error {
	var errs []error
	for i := range t.Nodes {
		if err := r.Validate(&t.Nodes[i]); err != nil {
			errs = append(errs, fmt.Errorf("node %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	cloned := NewRegistry()
	for _, t := range r.order {
		cloned.shapes[t] = r.shapes[t]
		cloned.order = append(cloned.order, t)
	}
	return cloned
}

// Builtin returns a registry holding every built-in type.
func Builtin() *Registry {
	r := NewRegistry()
	for _, entry := range []struct {
		t     Type
		shape Data
	}{
		{TypeDocument, nil},
		{TypeParagraph, nil},
		{TypeHeading, HeadingData{}},
		{TypeThematicBreak, nil},
		{TypeCodeBlock, CodeData{}},
		{TypeBlockQuote, nil},
		{TypeList, ListData{}},
		{TypeListItem, nil},
		{TypeTable, nil},
		{TypeTableRow, nil},
		{TypeTableCell, TableCellData{}},
		{TypeHTML, HTMLData{}},
		{TypeHTMLElement, HTMLData{}},
		{TypeMathBlock, MathData{}},
		{TypeText, nil},
		{TypeSoftBreak, nil},
		{TypeHardBreak, nil},
		{TypeEmph, nil},
		{TypeStrong, nil},
		{TypeStrikethrough, nil},
		{TypeCode, nil},
		{TypeLink, LinkData{}},
		{TypeImage, LinkData{}},
		{TypeHTMLInline, nil},
		{TypeMathInline, MathData{}},
		{TypeTemplate, TemplateData{}},
		{TypeEmoji, EmojiData{}},
		{TypeTaskCheckbox, CheckboxData{}},
	} {
		// Built-in entries are distinct constants.
		_ = r.Register(entry.t, entry.shape)
	}
	return r
}
