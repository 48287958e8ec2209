// Package html renders an extended tree to HTML fragments.
package html

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rgonek/extmd/render"
	"github.com/rgonek/extmd/tree"
	"github.com/yuin/goldmark-emoji/definition"
)

// RawHTMLPolicy decides what happens to raw HTML found in the source.
type RawHTMLPolicy string

const (
	// RawHTMLDefault keeps raw HTML, or sanitizes it in safe mode.
	RawHTMLDefault RawHTMLPolicy = ""
	// RawHTMLKeep emits raw HTML verbatim.
	RawHTMLKeep RawHTMLPolicy = "keep"
	// RawHTMLSanitize passes raw HTML through a UGC sanitizer.
	RawHTMLSanitize RawHTMLPolicy = "sanitize"
	// RawHTMLOmit drops raw HTML and keeps the content of merged elements.
	RawHTMLOmit RawHTMLPolicy = "omit"
)

// OmissionNotice replaces content rejected in safe mode.
const OmissionNotice = `<span class="omitted">[unsafe link omitted]</span>`

// Options configures the HTML function set.
type Options struct {
	Safe    bool
	RawHTML RawHTMLPolicy
	// EmojiAliases maps extra shortcodes onto GitHub shortcodes.
	EmojiAliases map[string]string
}

func (o Options) rawHTML() RawHTMLPolicy {
	if o.RawHTML != RawHTMLDefault {
		return o.RawHTML
	}
	if o.Safe {
		return RawHTMLSanitize
	}
	return RawHTMLKeep
}

// Placeholder marks a node type without a render function.
func Placeholder(typ tree.Type) string {
	return fmt.Sprintf(`<span class="unsupported">[unsupported node: %s]</span>`, escape(string(typ)))
}

type htmlRenderer struct {
	policy   RawHTMLPolicy
	sanitize *bluemonday.Policy
	emojis   definition.Emojis
	aliases  map[string]string
}

// Funcs returns one render function per built-in node type.
func Funcs(opts Options) map[tree.Type]render.Func[string] {
	r := &htmlRenderer{
		policy:   opts.rawHTML(),
		sanitize: bluemonday.UGCPolicy(),
		emojis:   definition.Github(),
		aliases:  opts.EmojiAliases,
	}

	return map[tree.Type]render.Func[string]{
		tree.TypeDocument:      r.document,
		tree.TypeParagraph:     r.paragraph,
		tree.TypeHeading:       r.heading,
		tree.TypeThematicBreak: r.thematicBreak,
		tree.TypeCodeBlock:     r.codeBlock,
		tree.TypeBlockQuote:    r.blockQuote,
		tree.TypeList:          r.list,
		tree.TypeListItem:      r.listItem,
		tree.TypeTable:         r.table,
		tree.TypeTableRow:      r.tableRow,
		tree.TypeTableCell:     r.tableCell,
		tree.TypeHTML:          r.rawBlock,
		tree.TypeHTMLElement:   r.htmlElement,
		tree.TypeMathBlock:     r.mathBlock,
		tree.TypeText:          r.text,
		tree.TypeSoftBreak:     r.softBreak,
		tree.TypeHardBreak:     r.hardBreak,
		tree.TypeEmph:          wrap("em"),
		tree.TypeStrong:        wrap("strong"),
		tree.TypeStrikethrough: wrap("del"),
		tree.TypeCode:          r.code,
		tree.TypeLink:          r.link,
		tree.TypeImage:         r.image,
		tree.TypeHTMLInline:    r.rawInline,
		tree.TypeMathInline:    r.mathInline,
		tree.TypeTemplate:      r.template,
		tree.TypeEmoji:         r.emoji,
		tree.TypeTaskCheckbox:  r.taskCheckbox,
	}
}

// New returns a renderer producing HTML for the built-in node types.
func New(opts Options) (*render.Renderer[string], error) {
	return render.New(Funcs(opts), render.Options[string]{
		Registry:    tree.Builtin(),
		Placeholder: Placeholder,
		Safe:        opts.Safe,
	})
}
