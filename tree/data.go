package tree

import "strings"

// Data is the type-specific payload of a node. The registry fixes which
// variant belongs to which Type.
type Data interface{}

// Align is a table column alignment.
type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type HeadingData struct {
	Level int
}

type ListData struct {
	Ordered bool
	Tight   bool
	Start   int
	Marker  byte
}

type CodeData struct {
	Info   string
	Fenced bool
}

// Language returns the first word of the info string.
func (d CodeData) Language() string {
	fields := strings.Fields(d.Info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

type TableCellData struct {
	Align  Align
	Header bool
}

// LinkData is shared by links and images.
type LinkData struct {
	Destination string
	Title       string
	Auto        bool
}

// HTMLData describes raw HTML blocks and merged HTML elements. Tag and
// Attrs are set for elements; Comment marks raw blocks that are a single
// HTML comment.
type HTMLData struct {
	Tag     string
	Attrs   string
	Comment bool
}

type MathData struct {
	Display bool
}

type TemplateData struct {
	Name   string
	Args   []string
	Params map[string]string
}

type EmojiData struct {
	Shortcode string
}

type CheckboxData struct {
	Checked bool
}
