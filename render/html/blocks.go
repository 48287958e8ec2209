package html

import (
	stdhtml "html"
	"strconv"
	"strings"

	"github.com/rgonek/extmd/render"
	"github.com/rgonek/extmd/tree"
)

func escape(s string) string {
	return stdhtml.EscapeString(s)
}

func join(children []string) string {
	return strings.Join(children, "")
}

func (r *htmlRenderer) document(ctx *render.Context, n *tree.Node, children []string) string {
	return join(children)
}

func (r *htmlRenderer) paragraph(ctx *render.Context, n *tree.Node, children []string) string {
	if ctx.Tight() {
		return join(children)
	}
	if ctx.Macros().Has("p", "paragraph", "align-center") {
		return `<p align="center">` + join(children) + "</p>\n"
	}
	return "<p>" + join(children) + "</p>\n"
}

func (r *htmlRenderer) heading(ctx *render.Context, n *tree.Node, children []string) string {
	info := ctx.Heading()
	anchor := escape(info.Anchor)

	var b strings.Builder
	b.WriteString("<" + info.Tag + ` id="` + anchor + `"`)
	if info.AlignCenter {
		b.WriteString(` align="center"`)
	}
	b.WriteString(">")
	if !info.NoLink {
		b.WriteString(`<a class="anchor" href="#` + anchor + `" aria-hidden="true"></a>`)
	}
	b.WriteString(join(children))
	b.WriteString("</" + info.Tag + ">\n")
	return b.String()
}

func (r *htmlRenderer) thematicBreak(ctx *render.Context, n *tree.Node, children []string) string {
	return "<hr>\n"
}

func (r *htmlRenderer) codeBlock(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.CodeData)
	if lang := data.Language(); lang != "" {
		return `<pre><code class="language-` + escape(lang) + `">` + escape(n.Literal) + "</code></pre>\n"
	}
	return "<pre><code>" + escape(n.Literal) + "</code></pre>\n"
}

func (r *htmlRenderer) blockQuote(ctx *render.Context, n *tree.Node, children []string) string {
	return "<blockquote>\n" + join(children) + "</blockquote>\n"
}

func (r *htmlRenderer) list(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.ListData)
	if !data.Ordered {
		return "<ul>\n" + join(children) + "</ul>\n"
	}
	if start, ok := ctx.ListStart(); ok {
		return `<ol start="` + strconv.Itoa(start) + `">` + "\n" + join(children) + "</ol>\n"
	}
	return "<ol>\n" + join(children) + "</ol>\n"
}

func (r *htmlRenderer) listItem(ctx *render.Context, n *tree.Node, children []string) string {
	return "<li>" + join(children) + "</li>\n"
}

func (r *htmlRenderer) table(ctx *render.Context, n *tree.Node, children []string) string {
	var head, body strings.Builder
	for idx, row := range children {
		if isHeaderRow(ctx.Tree(), n.Children[idx]) {
			head.WriteString(row)
			continue
		}
		body.WriteString(row)
	}

	var b strings.Builder
	b.WriteString("<table>\n")
	if head.Len() > 0 {
		b.WriteString("<thead>\n" + head.String() + "</thead>\n")
	}
	if body.Len() > 0 {
		b.WriteString("<tbody>\n" + body.String() + "</tbody>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

func isHeaderRow(t *tree.Tree, id tree.ID) bool {
	row := t.Node(id)
	if len(row.Children) == 0 {
		return false
	}
	data, ok := t.Node(row.Children[0]).Data.(tree.TableCellData)
	return ok && data.Header
}

func (r *htmlRenderer) tableRow(ctx *render.Context, n *tree.Node, children []string) string {
	return "<tr>\n" + join(children) + "</tr>\n"
}

func (r *htmlRenderer) tableCell(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.TableCellData)
	tag := "td"
	if data.Header {
		tag = "th"
	}
	open := "<" + tag
	if data.Align != tree.AlignNone {
		open += ` style="text-align: ` + string(data.Align) + `"`
	}
	return open + ">" + join(children) + "</" + tag + ">\n"
}

func (r *htmlRenderer) mathBlock(ctx *render.Context, n *tree.Node, children []string) string {
	return `<div class="math display">` + escape(n.Literal) + "</div>\n"
}

func (r *htmlRenderer) rawBlock(ctx *render.Context, n *tree.Node, children []string) string {
	return r.raw(ctx, n.Literal)
}

// htmlElement renders a merged HTML container. The opening tag goes through
// the raw HTML policy; the children were already rendered as markdown.
func (r *htmlRenderer) htmlElement(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.HTMLData)
	open := "<" + data.Tag
	if data.Attrs != "" {
		open += " " + data.Attrs
	}
	open += ">"
	closing := "</" + data.Tag + ">"

	switch r.policy {
	case RawHTMLOmit:
		ctx.Warn(tree.WarningDroppedFeature, "dropped <"+data.Tag+"> wrapper")
		return join(children)
	case RawHTMLSanitize:
		sanitized := r.sanitize.Sanitize(open + closing)
		if !strings.HasSuffix(sanitized, closing) {
			ctx.Warn(tree.WarningUnsafeContent, "sanitizer removed <"+data.Tag+"> wrapper")
			return join(children)
		}
		open = strings.TrimSuffix(sanitized, closing)
	}

	return open + "\n" + join(children) + closing + "\n"
}

// raw applies the raw HTML policy to a literal fragment.
func (r *htmlRenderer) raw(ctx *render.Context, literal string) string {
	switch r.policy {
	case RawHTMLOmit:
		ctx.Warn(tree.WarningDroppedFeature, "raw HTML omitted")
		return ""
	case RawHTMLSanitize:
		return r.sanitize.Sanitize(literal)
	default:
		return literal
	}
}
