package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/extmd/tree"
	xhtml "golang.org/x/net/html"
)

// ErrNotTextual is returned by Stringify for structural node types.
var ErrNotTextual = errors.New("node type has no textual form")

var textualTypes = map[tree.Type]bool{
	tree.TypeHeading:   true,
	tree.TypeParagraph: true,
	tree.TypeHTML:      true,
}

// Stringify returns the plain text of a heading, paragraph or raw HTML block.
// Any other type is a programming error reported as ErrNotTextual.
func Stringify(t *tree.Tree, id tree.ID) (string, error) {
	n := t.Node(id)
	if !textualTypes[n.Type] {
		return "", fmt.Errorf("%w: %s", ErrNotTextual, n.Type)
	}
	if n.Type == tree.TypeHTML {
		return strings.TrimSpace(htmlText(n.Literal)), nil
	}

	var b strings.Builder
	writeInlineText(&b, t, n)
	return strings.TrimSpace(b.String()), nil
}

func writeInlineText(b *strings.Builder, t *tree.Tree, n *tree.Node) {
	for _, childID := range n.Children {
		child := t.Node(childID)
		switch child.Type {
		case tree.TypeText, tree.TypeCode, tree.TypeMathInline, tree.TypeEmoji:
			b.WriteString(child.Literal)
		case tree.TypeSoftBreak, tree.TypeHardBreak:
			b.WriteByte(' ')
		case tree.TypeHTMLInline, tree.TypeTemplate, tree.TypeTaskCheckbox:
		default:
			writeInlineText(b, t, child)
		}
	}
}

// htmlText keeps the text tokens of an HTML fragment.
func htmlText(raw string) string {
	var b strings.Builder
	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		switch tokenizer.Next() {
		case xhtml.ErrorToken:
			return b.String()
		case xhtml.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
