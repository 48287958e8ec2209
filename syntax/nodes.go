package syntax

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

var (
	KindMathBlock  = ast.NewNodeKind("MathBlock")
	KindMathInline = ast.NewNodeKind("MathInline")
	KindTemplate   = ast.NewNodeKind("Template")
	KindEmoji      = ast.NewNodeKind("Emoji")
)

// MathBlock is a display math fence delimited by $$ lines.
type MathBlock struct {
	ast.BaseBlock
	bodyLines []string
	closed    bool
}

func NewMathBlock() *MathBlock {
	return &MathBlock{}
}

func (n *MathBlock) Kind() ast.NodeKind {
	return KindMathBlock
}

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"LineCount": strconv.Itoa(len(n.bodyLines)),
	}, nil)
}

func (n *MathBlock) appendBodyLine(line string) {
	n.bodyLines = append(n.bodyLines, line)
}

// Body returns the math source without the fences.
func (n *MathBlock) Body() string {
	return strings.Join(n.bodyLines, "\n")
}

// MathInline is a $...$ span.
type MathInline struct {
	ast.BaseInline
	Content string
}

func NewMathInline(content string) *MathInline {
	return &MathInline{Content: content}
}

func (n *MathInline) Kind() ast.NodeKind {
	return KindMathInline
}

func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Content": n.Content,
	}, nil)
}

// Template is a {{name arg key=value}} invocation.
type Template struct {
	ast.BaseInline
	Name   string
	Args   []string
	Params map[string]string
	Raw    string
}

func NewTemplate(name string, args []string, params map[string]string, raw string) *Template {
	return &Template{
		Name:   name,
		Args:   args,
		Params: params,
		Raw:    raw,
	}
}

func (n *Template) Kind() ast.NodeKind {
	return KindTemplate
}

func (n *Template) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name": n.Name,
		"Args": strings.Join(n.Args, ","),
		"Raw":  n.Raw,
	}, nil)
}

// Emoji is a :shortcode: reference. Glyph lookup is left to renderers.
type Emoji struct {
	ast.BaseInline
	Shortcode string
}

func NewEmoji(shortcode string) *Emoji {
	return &Emoji{Shortcode: shortcode}
}

func (n *Emoji) Kind() ast.NodeKind {
	return KindEmoji
}

func (n *Emoji) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Shortcode": n.Shortcode,
	}, nil)
}
