package macro

import (
	"fmt"

	"github.com/rgonek/extmd/tree"
)

// LayoutScope is reserved for slot markers.
const LayoutScope = "layout"

// LayoutKind is the attribute of a layout marker.
type LayoutKind string

const (
	// LayoutSlot starts a new slot beside the current one.
	LayoutSlot LayoutKind = "slot"
	// LayoutOpen starts a slot nested in the current one.
	LayoutOpen LayoutKind = "open"
	// LayoutClose ends the innermost nested slot.
	LayoutClose LayoutKind = "close"
)

// LayoutMarker is a layout marker placed before the top-level block at
// Position. Position counts rendered blocks, so markers themselves are
// excluded.
type LayoutMarker struct {
	Position int        `json:"position" yaml:"position"`
	Kind     LayoutKind `json:"kind" yaml:"kind"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
}

// Markers is the output of the extraction pass. The tree is left as it was;
// renderers consult IsMarker to skip marker nodes.
type Markers struct {
	Annotations map[tree.ID]*Store
	Layout      []LayoutMarker
	Warnings    []tree.Warning

	markers map[tree.ID]bool
}

// IsMarker reports whether id is a marker comment consumed by Extract.
func (m Markers) IsMarker(id tree.ID) bool {
	return m.markers[id]
}

// Store returns the annotations attached to id, or nil.
func (m Markers) Store(id tree.ID) *Store {
	return m.Annotations[id]
}

type extraction struct {
	tree    *tree.Tree
	markers Markers
}

// Extract collects every marker in t. Annotation markers attach to the next
// non-marker sibling; layout markers are only honoured among the children of
// the document.
func Extract(t *tree.Tree) Markers {
	e := &extraction{
		tree: t,
		markers: Markers{
			Annotations: map[tree.ID]*Store{},
			markers:     map[tree.ID]bool{},
		},
	}
	e.extractChildren(t.Root())
	return e.markers
}

func (e *extraction) addWarning(warnType tree.WarningType, message string) {
	e.markers.Warnings = append(e.markers.Warnings, tree.Warning{
		Type:     warnType,
		NodeType: string(tree.TypeHTML),
		Message:  message,
	})
}

func (e *extraction) extractChildren(parent *tree.Node) {
	var pending []Marker
	position := 0
	topLevel := parent.ID == e.tree.Root().ID

	for _, childID := range parent.Children {
		child := e.tree.Node(childID)

		if marker, ok := markerOf(child); ok {
			e.markers.markers[childID] = true
			if marker.Scope == LayoutScope {
				e.layoutMarker(marker, position, topLevel)
				continue
			}
			pending = append(pending, marker)
			continue
		}

		if len(pending) > 0 {
			store := e.markers.Annotations[childID]
			if store == nil {
				store = NewStore()
				e.markers.Annotations[childID] = store
			}
			for _, marker := range pending {
				store.recordMarker(marker)
			}
			pending = nil
		}

		position++
		e.extractChildren(child)
	}

	for _, marker := range pending {
		e.addWarning(tree.WarningDanglingMarker, fmt.Sprintf("marker %q has no following block", marker.Raw))
	}
}

func (e *extraction) layoutMarker(marker Marker, position int, topLevel bool) {
	if !topLevel {
		e.addWarning(tree.WarningIgnoredMarker, fmt.Sprintf("layout marker %q is nested inside a block", marker.Raw))
		return
	}

	if len(marker.Items) > 1 {
		e.addWarning(tree.WarningIgnoredMarker, fmt.Sprintf("layout marker %q carries more than one item, using the first", marker.Raw))
	}

	item := marker.Items[0]
	kind := LayoutKind(item.Attribute)
	switch kind {
	case LayoutSlot, LayoutOpen, LayoutClose:
	default:
		e.addWarning(tree.WarningIgnoredMarker, fmt.Sprintf("unknown layout marker %q", item.Attribute))
		return
	}

	e.markers.Layout = append(e.markers.Layout, LayoutMarker{
		Position: position,
		Kind:     kind,
		Name:     item.Value,
	})
}

func markerOf(n *tree.Node) (Marker, bool) {
	if n.Type != tree.TypeHTML {
		return Marker{}, false
	}
	data, ok := n.Data.(tree.HTMLData)
	if !ok || !data.Comment {
		return Marker{}, false
	}
	return ParseMarker(n.Literal)
}
