package tree

import (
	"fmt"
	"strings"

	"github.com/rgonek/extmd/syntax"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// LowerOptions tunes the conversion from the goldmark AST.
type LowerOptions struct {
	// MergeHTML folds an opening HTML tag block, the blocks that follow it
	// and its closing tag block into one html-element node.
	MergeHTML bool
	// HeadingOffset shifts heading levels; the result is clamped to 1..6.
	HeadingOffset int
}

type lowering struct {
	tree     *Tree
	source   []byte
	opts     LowerOptions
	warnings []Warning
}

// Lower converts a goldmark document into an extended tree. Nodes the
// lowering does not know keep their goldmark kind name as type so that
// renderers can substitute a placeholder for them.
func Lower(doc ast.Node, source []byte, opts LowerOptions) (*Tree, []Warning) {
	l := &lowering{
		tree:   New(source),
		source: source,
		opts:   opts,
	}
	l.lowerBlockChildren(doc, 0)
	return l.tree, l.warnings
}

func (l *lowering) addWarning(warnType WarningType, nodeType, message string) {
	l.warnings = append(l.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (l *lowering) lowerBlockChildren(parent ast.Node, into ID) {
	children := make([]ast.Node, 0, parent.ChildCount())
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		children = append(children, child)
	}
	l.lowerBlockSlice(children, into)
}

func (l *lowering) lowerBlockSlice(children []ast.Node, into ID) {
	for index := 0; index < len(children); {
		if l.opts.MergeHTML {
			if opening, ok := children[index].(*ast.HTMLBlock); ok {
				if tag, attrs, isOpen := parseOpeningTag(htmlBlockText(opening, l.source)); isOpen {
					end := findClosingBlock(children, index, tag, l.source)
					if end > index {
						element := l.tree.Add(into, TypeHTMLElement, strings.TrimSpace(htmlBlockText(opening, l.source)), HTMLData{
							Tag:   tag,
							Attrs: attrs,
						})
						l.lowerBlockSlice(children[index+1:end], element)
						index = end + 1
						continue
					}
					l.addWarning(WarningUnbalancedHTML, string(TypeHTML), fmt.Sprintf("no closing </%s> found, keeping raw HTML", tag))
				}
			}
		}

		l.lowerBlock(children[index], into)
		index++
	}
}

func (l *lowering) lowerBlock(node ast.Node, into ID) {
	switch typed := node.(type) {
	case *ast.Paragraph:
		id := l.tree.Add(into, TypeParagraph, "", nil)
		l.lowerInlineChildren(typed, id)

	case *ast.TextBlock:
		id := l.tree.Add(into, TypeParagraph, "", nil)
		l.lowerInlineChildren(typed, id)

	case *ast.Heading:
		level := typed.Level + l.opts.HeadingOffset
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		id := l.tree.Add(into, TypeHeading, "", HeadingData{Level: level})
		l.lowerInlineChildren(typed, id)

	case *ast.ThematicBreak:
		l.tree.Add(into, TypeThematicBreak, "", nil)

	case *ast.FencedCodeBlock:
		info := ""
		if typed.Info != nil {
			info = strings.TrimSpace(string(typed.Info.Segment.Value(l.source)))
		}
		l.tree.Add(into, TypeCodeBlock, linesText(typed, l.source), CodeData{Info: info, Fenced: true})

	case *ast.CodeBlock:
		l.tree.Add(into, TypeCodeBlock, linesText(typed, l.source), CodeData{})

	case *ast.Blockquote:
		id := l.tree.Add(into, TypeBlockQuote, "", nil)
		l.lowerBlockChildren(typed, id)

	case *ast.List:
		id := l.tree.Add(into, TypeList, "", ListData{
			Ordered: typed.IsOrdered(),
			Tight:   typed.IsTight,
			Start:   typed.Start,
			Marker:  typed.Marker,
		})
		for child := typed.FirstChild(); child != nil; child = child.NextSibling() {
			l.lowerBlock(child, id)
		}

	case *ast.ListItem:
		id := l.tree.Add(into, TypeListItem, "", nil)
		l.lowerBlockChildren(typed, id)

	case *ast.HTMLBlock:
		raw := htmlBlockText(typed, l.source)
		l.tree.Add(into, TypeHTML, raw, HTMLData{Comment: isSingleComment(raw)})

	case *extast.Table:
		l.lowerTable(typed, into)

	case *syntax.MathBlock:
		l.tree.Add(into, TypeMathBlock, typed.Body(), MathData{Display: true})

	default:
		l.lowerUnknown(node, into, "block")
	}
}

func (l *lowering) lowerTable(table *extast.Table, into ID) {
	id := l.tree.Add(into, TypeTable, "", nil)
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			l.lowerTableRow(row, id, true)
		case *extast.TableRow:
			l.lowerTableRow(row, id, false)
		}
	}
}

func (l *lowering) lowerTableRow(row ast.Node, into ID, header bool) {
	id := l.tree.Add(into, TypeTableRow, "", nil)
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cell, ok := child.(*extast.TableCell)
		if !ok {
			continue
		}
		cellID := l.tree.Add(id, TypeTableCell, "", TableCellData{
			Align:  alignFromTable(cell.Alignment),
			Header: header,
		})
		l.lowerInlineChildren(cell, cellID)
	}
}

func alignFromTable(alignment extast.Alignment) Align {
	switch alignment {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignCenter:
		return AlignCenter
	case extast.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}

func (l *lowering) lowerInlineChildren(parent ast.Node, into ID) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		l.lowerInline(child, into)
	}
}

func (l *lowering) lowerInline(node ast.Node, into ID) {
	switch typed := node.(type) {
	case *ast.Text:
		if value := string(typed.Value(l.source)); value != "" {
			l.tree.Add(into, TypeText, value, nil)
		}
		if typed.HardLineBreak() {
			l.tree.Add(into, TypeHardBreak, "", nil)
		} else if typed.SoftLineBreak() {
			l.tree.Add(into, TypeSoftBreak, "", nil)
		}

	case *ast.String:
		l.tree.Add(into, TypeText, string(typed.Value), nil)

	case *ast.Emphasis:
		typ := TypeEmph
		if typed.Level >= 2 {
			typ = TypeStrong
		}
		id := l.tree.Add(into, typ, "", nil)
		l.lowerInlineChildren(typed, id)

	case *extast.Strikethrough:
		id := l.tree.Add(into, TypeStrikethrough, "", nil)
		l.lowerInlineChildren(typed, id)

	case *ast.CodeSpan:
		l.tree.Add(into, TypeCode, inlineText(typed, l.source), nil)

	case *ast.Link:
		id := l.tree.Add(into, TypeLink, "", LinkData{
			Destination: resolveReferences(typed.Destination),
			Title:       resolveReferences(typed.Title),
		})
		l.lowerInlineChildren(typed, id)

	case *ast.AutoLink:
		destination := string(typed.URL(l.source))
		if typed.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(destination), "mailto:") {
			destination = "mailto:" + destination
		}
		id := l.tree.Add(into, TypeLink, "", LinkData{
			Destination: destination,
			Auto:        true,
		})
		l.tree.Add(id, TypeText, string(typed.Label(l.source)), nil)

	case *ast.Image:
		id := l.tree.Add(into, TypeImage, "", LinkData{
			Destination: resolveReferences(typed.Destination),
			Title:       resolveReferences(typed.Title),
		})
		l.lowerInlineChildren(typed, id)

	case *ast.RawHTML:
		var raw strings.Builder
		for i := 0; i < typed.Segments.Len(); i++ {
			segment := typed.Segments.At(i)
			raw.Write(segment.Value(l.source))
		}
		l.tree.Add(into, TypeHTMLInline, raw.String(), nil)

	case *extast.TaskCheckBox:
		l.tree.Add(into, TypeTaskCheckbox, "", CheckboxData{Checked: typed.IsChecked})

	case *syntax.MathInline:
		l.tree.Add(into, TypeMathInline, typed.Content, MathData{})

	case *syntax.Template:
		params := make(map[string]string, len(typed.Params))
		for key, value := range typed.Params {
			params[key] = value
		}
		l.tree.Add(into, TypeTemplate, typed.Raw, TemplateData{
			Name:   typed.Name,
			Args:   append([]string(nil), typed.Args...),
			Params: params,
		})

	case *syntax.Emoji:
		l.tree.Add(into, TypeEmoji, ":"+typed.Shortcode+":", EmojiData{Shortcode: typed.Shortcode})

	default:
		l.lowerUnknown(node, into, "inline")
	}
}

// lowerUnknown keeps an unsupported node as an unregistered type. Containers
// keep their lowered children so renderers that skip the node can still reach
// the content.
func (l *lowering) lowerUnknown(node ast.Node, into ID, level string) {
	kind := node.Kind().String()
	typ := Type(strings.ToLower(kind))
	l.addWarning(
		WarningUnknownNode,
		kind,
		fmt.Sprintf("unsupported markdown %s node: %s", level, kind),
	)

	if !node.HasChildren() {
		literal := inlineText(node, l.source)
		if node.Type() == ast.TypeBlock && node.Lines().Len() > 0 {
			literal = linesText(node, l.source)
		}
		l.tree.Add(into, typ, strings.TrimSpace(literal), nil)
		return
	}

	id := l.tree.Add(into, typ, "", nil)
	if node.FirstChild().Type() == ast.TypeBlock {
		l.lowerBlockChildren(node, id)
	} else {
		l.lowerInlineChildren(node, id)
	}
}

// resolveReferences decodes entity and numeric character references the
// way CommonMark requires for link destinations and titles.
func resolveReferences(value []byte) string {
	return string(util.ResolveEntityNames(util.ResolveNumericReferences(value)))
}

// inlineText concatenates the text and string leaves under n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := child.(type) {
		case *ast.Text:
			b.Write(typed.Value(source))
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(typed.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func linesText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.String()
}

func htmlBlockText(n *ast.HTMLBlock, source []byte) string {
	raw := linesText(n, source)
	if n.HasClosure() {
		raw += string(n.ClosureLine.Value(source))
	}
	return raw
}
