package render

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/rgonek/extmd/macro"
	"github.com/rgonek/extmd/nav"
	"github.com/rgonek/extmd/tree"
	"github.com/shurcooL/sanitized_anchor_name"
)

var (
	unsafeDestinationPattern = regexp.MustCompile(`(?i)^\s*(javascript|vbscript|file|data):`)
	safeDataImagePattern     = regexp.MustCompile(`(?i)^\s*data:image/(png|gif|jpeg|webp);`)
)

// HeadingInfo is what the walk derived for a heading before rendering it.
type HeadingInfo struct {
	Level int
	// Tag is the concrete macro scope, "h1" to "h6".
	Tag    string
	Anchor string
	Title  string
	// AlignCenter and NoLink come from the align-center and no-link
	// annotations.
	AlignCenter bool
	NoLink      bool
}

// Context is passed to every render function. It belongs to a single render
// pass and must not be retained.
type Context struct {
	tree     *tree.Tree
	markers  macro.Markers
	node     *tree.Node
	anchor   string
	safe     bool
	nav      *nav.Builder
	anchors  map[string]bool
	headings map[tree.ID]HeadingInfo
	warnings []tree.Warning
}

// Tree returns the tree being rendered.
func (c *Context) Tree() *tree.Tree {
	return c.tree
}

// Node returns the node currently dispatched.
func (c *Context) Node() *tree.Node {
	return c.node
}

// Macros returns the annotations of the current node. The store may be nil,
// which reads as "nothing set".
func (c *Context) Macros() *macro.Store {
	return c.markers.Store(c.node.ID)
}

// Anchor returns the anchor of the section enclosing the current node, or
// "" before the first heading.
func (c *Context) Anchor() string {
	return c.anchor
}

// Heading returns the derived data for the current node. It is only
// meaningful while rendering a heading.
func (c *Context) Heading() HeadingInfo {
	return c.headings[c.node.ID]
}

// Tight reports whether the current node sits in a tight list, that is its
// grandparent is a list flagged tight. It is read from the tree on every
// call.
func (c *Context) Tight() bool {
	grandparent, ok := c.tree.Ancestor(c.node.ID, 2)
	if !ok || grandparent.Type != tree.TypeList {
		return false
	}
	data, ok := grandparent.Data.(tree.ListData)
	return ok && data.Tight
}

// ListStart returns the start number of the current ordered list when it
// differs from 1.
func (c *Context) ListStart() (int, bool) {
	data, ok := c.node.Data.(tree.ListData)
	if !ok || !data.Ordered || data.Start == 1 {
		return 0, false
	}
	return data.Start, true
}

// Safe reports whether safe mode is on.
func (c *Context) Safe() bool {
	return c.safe
}

// SafeDestination reports whether dest may be emitted. Outside safe mode
// everything is allowed.
func (c *Context) SafeDestination(dest string) bool {
	if !c.safe {
		return true
	}
	return !IsUnsafeDestination(dest)
}

// IsUnsafeDestination matches the script, file and data schemes. Inline
// images in common raster formats are allowed.
func IsUnsafeDestination(dest string) bool {
	if !unsafeDestinationPattern.MatchString(dest) {
		return false
	}
	return !safeDataImagePattern.MatchString(dest)
}

// Stringify returns the plain text of id. It panics for node types that have
// no textual form.
func (c *Context) Stringify(id tree.ID) string {
	text, err := Stringify(c.tree, id)
	if err != nil {
		panic(err)
	}
	return text
}

// Warn records a warning against the current node.
func (c *Context) Warn(warnType tree.WarningType, message string) {
	nodeType := ""
	if c.node != nil {
		nodeType = string(c.node.Type)
	}
	c.warnings = append(c.warnings, tree.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

// enterHeading derives the heading anchor before the heading's children are
// rendered, so they see it as the enclosing section.
func (c *Context) enterHeading(n *tree.Node) {
	level := 1
	if data, ok := n.Data.(tree.HeadingData); ok {
		level = data.Level
	}
	tag := "h" + strconv.Itoa(level)
	store := c.markers.Store(n.ID)
	title := c.Stringify(n.ID)

	anchor := ""
	explicit := false
	if value, ok := store.Check(tag, "heading", "use-hash"); ok && value.Text != "" {
		anchor = value.Text
		explicit = true
	} else {
		anchor = sanitized_anchor_name.Create(title)
	}
	if anchor == "" {
		anchor = "section"
	}

	unique := c.uniqueAnchor(anchor)
	if explicit && unique != anchor {
		c.warnings = append(c.warnings, tree.Warning{
			Type:     tree.WarningDuplicateAnchor,
			NodeType: string(tree.TypeHeading),
			Message:  fmt.Sprintf("anchor %q is already in use, using %q", anchor, unique),
		})
	}

	c.headings[n.ID] = HeadingInfo{
		Level:       level,
		Tag:         tag,
		Anchor:      unique,
		Title:       title,
		AlignCenter: store.Has(tag, "heading", "align-center"),
		NoLink:      store.Has(tag, "heading", "no-link"),
	}
	c.anchor = unique
}

func (c *Context) uniqueAnchor(anchor string) string {
	candidate := anchor
	for suffix := 1; c.anchors[candidate]; suffix++ {
		candidate = anchor + "-" + strconv.Itoa(suffix)
	}
	c.anchors[candidate] = true
	return candidate
}
