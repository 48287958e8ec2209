package html

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rgonek/extmd/render"
	"github.com/rgonek/extmd/tree"
)

var paramKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

func wrap(tag string) render.Func[string] {
	return func(ctx *render.Context, n *tree.Node, children []string) string {
		return "<" + tag + ">" + join(children) + "</" + tag + ">"
	}
}

func (r *htmlRenderer) text(ctx *render.Context, n *tree.Node, children []string) string {
	return escape(n.Literal)
}

func (r *htmlRenderer) softBreak(ctx *render.Context, n *tree.Node, children []string) string {
	return "\n"
}

func (r *htmlRenderer) hardBreak(ctx *render.Context, n *tree.Node, children []string) string {
	return "<br>\n"
}

func (r *htmlRenderer) code(ctx *render.Context, n *tree.Node, children []string) string {
	return "<code>" + escape(n.Literal) + "</code>"
}

func (r *htmlRenderer) link(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.LinkData)
	if !ctx.SafeDestination(data.Destination) {
		ctx.Warn(tree.WarningUnsafeContent, "unsafe link destination omitted")
		return OmissionNotice
	}

	open := `<a href="` + escape(data.Destination) + `"`
	if data.Title != "" {
		open += ` title="` + escape(data.Title) + `"`
	}
	return open + ">" + join(children) + "</a>"
}

func (r *htmlRenderer) image(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.LinkData)
	if !ctx.SafeDestination(data.Destination) {
		ctx.Warn(tree.WarningUnsafeContent, "unsafe image source omitted")
		return OmissionNotice
	}

	var alt strings.Builder
	ctx.Tree().Walk(n.ID, func(child *tree.Node) bool {
		if child.Type == tree.TypeText || child.Type == tree.TypeCode {
			alt.WriteString(child.Literal)
		}
		return true
	})

	img := `<img src="` + escape(data.Destination) + `" alt="` + escape(alt.String()) + `"`
	if data.Title != "" {
		img += ` title="` + escape(data.Title) + `"`
	}
	return img + ">"
}

func (r *htmlRenderer) rawInline(ctx *render.Context, n *tree.Node, children []string) string {
	return r.raw(ctx, n.Literal)
}

func (r *htmlRenderer) mathInline(ctx *render.Context, n *tree.Node, children []string) string {
	return `<span class="math inline">` + escape(n.Literal) + "</span>"
}

// template leaves expansion to the host page. The invocation is kept as
// data attributes, parameters in key order.
func (r *htmlRenderer) template(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.TemplateData)

	var b strings.Builder
	b.WriteString(`<span class="template" data-name="` + escape(data.Name) + `"`)
	if len(data.Args) > 0 {
		b.WriteString(` data-args="` + escape(strings.Join(data.Args, " ")) + `"`)
	}
	keys := make([]string, 0, len(data.Params))
	for key := range data.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !paramKeyPattern.MatchString(key) {
			ctx.Warn(tree.WarningUnsafeContent, "template parameter "+strconv.Quote(key)+" dropped")
			continue
		}
		b.WriteString(` data-param-` + strings.ToLower(key) + `="` + escape(data.Params[key]) + `"`)
	}
	b.WriteString(">" + escape(n.Literal) + "</span>")
	return b.String()
}

func (r *htmlRenderer) emoji(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.EmojiData)
	shortcode := data.Shortcode
	if alias, ok := r.aliases[shortcode]; ok {
		shortcode = alias
	}
	if emoji, ok := r.emojis.Get(shortcode); ok {
		return `<span class="emoji" title="` + escape(data.Shortcode) + `">` + string(emoji.Unicode) + "</span>"
	}
	return escape(n.Literal)
}

func (r *htmlRenderer) taskCheckbox(ctx *render.Context, n *tree.Node, children []string) string {
	data, _ := n.Data.(tree.CheckboxData)
	if data.Checked {
		return `<input type="checkbox" checked disabled> `
	}
	return `<input type="checkbox" disabled> `
}
