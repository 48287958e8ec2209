// Package layout regroups the rendered top-level blocks of a document into
// slots delimited by layout markers.
package layout

import (
	"sort"

	"github.com/rgonek/extmd/macro"
)

// Slot is a region of the document. Index is the position of the slot among
// its siblings.
type Slot[T any] struct {
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Index    int        `json:"index" yaml:"index"`
	Content  []T        `json:"content" yaml:"content"`
	Children []*Slot[T] `json:"children,omitempty" yaml:"children,omitempty"`
}

// Named reports whether the slot was given a name by its marker.
func (s *Slot[T]) Named() bool {
	return s.Name != ""
}

type partition[T any] struct {
	roots []*Slot[T]
	// stack[0] is a top-level slot; deeper entries were started by open
	// markers.
	stack []*Slot[T]
}

// Partition splits blocks at the marker positions. Blocks before the first
// marker go to an implicit unnamed slot. Every marker starts a fresh slot,
// and slots still open at the end of input are closed implicitly.
func Partition[T any](blocks []T, markers []macro.LayoutMarker) []*Slot[T] {
	ordered := make([]macro.LayoutMarker, len(markers))
	copy(ordered, markers)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	p := &partition[T]{}
	next := 0
	for idx, block := range blocks {
		for next < len(ordered) && ordered[next].Position <= idx {
			p.apply(ordered[next])
			next++
		}
		p.append(block)
	}
	for ; next < len(ordered); next++ {
		p.apply(ordered[next])
	}

	return p.roots
}

func (p *partition[T]) apply(marker macro.LayoutMarker) {
	switch marker.Kind {
	case macro.LayoutSlot:
		if len(p.stack) > 0 {
			p.stack = p.stack[:len(p.stack)-1]
		}
		p.push(marker.Name)
	case macro.LayoutOpen:
		p.push(marker.Name)
	case macro.LayoutClose:
		if len(p.stack) > 1 {
			p.stack = p.stack[:len(p.stack)-1]
		}
	}
}

// push starts a slot as a child of the current slot, or at the top level
// when nothing is open.
func (p *partition[T]) push(name string) {
	slot := &Slot[T]{Name: name}
	if len(p.stack) == 0 {
		slot.Index = len(p.roots)
		p.roots = append(p.roots, slot)
	} else {
		parent := p.stack[len(p.stack)-1]
		slot.Index = len(parent.Children)
		parent.Children = append(parent.Children, slot)
	}
	p.stack = append(p.stack, slot)
}

func (p *partition[T]) append(block T) {
	if len(p.stack) == 0 {
		p.push("")
	}
	current := p.stack[len(p.stack)-1]
	current.Content = append(current.Content, block)
}

// Walk visits slots depth-first.
func Walk[T any](slots []*Slot[T], fn func(s *Slot[T], depth int)) {
	for _, s := range slots {
		walkSlot(s, 0, fn)
	}
}

func walkSlot[T any](s *Slot[T], depth int, fn func(s *Slot[T], depth int)) {
	fn(s, depth)
	for _, child := range s.Children {
		walkSlot(child, depth+1, fn)
	}
}
