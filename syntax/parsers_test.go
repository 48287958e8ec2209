package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func parseExtended(t *testing.T, markdown string) ast.Node {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(Default()))
	return md.Parser().Parse(text.NewReader([]byte(markdown)))
}

func collectKind(doc ast.Node, kind ast.NodeKind) []ast.Node {
	var out []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == kind {
			out = append(out, n)
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestMathBlockParser(t *testing.T) {
	tests := []struct {
		name  string
		input string
		body  string
	}{
		{name: "fenced", input: "$$\na + b\nc\n$$\n", body: "a + b\nc"},
		{name: "single line", input: "$$ x^2 $$\n", body: "x^2"},
		{name: "unterminated", input: "$$\nx\n", body: "x"},
		{name: "interrupts paragraph", input: "text\n$$\ny\n$$\n", body: "y"},
		{name: "inline dollars do not close", input: "$$\na = $$\nb\n$$\n", body: "a = $$\nb"},
		{name: "blank body line", input: "$$\na\n\nb\n$$\n", body: "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := collectKind(parseExtended(t, tt.input), KindMathBlock)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.body, blocks[0].(*MathBlock).Body())
		})
	}
}

func TestMathBlockParserInContainers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		parent ast.NodeKind
		body   string
		after  string
	}{
		{
			name:   "blockquote",
			input:  "> $$\n> a + b\n> $$\n> after\n",
			parent: ast.KindBlockquote,
			body:   "a + b",
			after:  "after",
		},
		{
			name:   "list item",
			input:  "- $$\n  x^2\n  $$\n\n  after\n",
			parent: ast.KindListItem,
			body:   "x^2",
			after:  "after",
		},
		{
			name:   "blockquote ends the fence",
			input:  "> $$\n> x\n\noutside\n",
			parent: ast.KindBlockquote,
			body:   "x",
			after:  "outside",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := []byte(tt.input)
			doc := goldmark.New(goldmark.WithExtensions(Default())).Parser().Parse(text.NewReader(source))

			blocks := collectKind(doc, KindMathBlock)
			require.Len(t, blocks, 1)
			math := blocks[0].(*MathBlock)
			assert.Equal(t, tt.body, math.Body())
			assert.Equal(t, tt.parent, math.Parent().Kind())

			paragraphs := collectKind(doc, ast.KindParagraph)
			require.Len(t, paragraphs, 1)
			assert.Equal(t, tt.after, string(paragraphs[0].Text(source)))
		})
	}
}

func TestMathInlineParser(t *testing.T) {
	doc := parseExtended(t, "cost $x+1$ and $ 5$ flat\n")

	spans := collectKind(doc, KindMathInline)
	require.Len(t, spans, 1)
	assert.Equal(t, "x+1", spans[0].(*MathInline).Content)
}

func TestTemplateParser(t *testing.T) {
	doc := parseExtended(t, `see {{ badge "build ok" color=green }} here`)

	templates := collectKind(doc, KindTemplate)
	require.Len(t, templates, 1)
	tmpl := templates[0].(*Template)
	assert.Equal(t, "badge", tmpl.Name)
	assert.Equal(t, []string{"build ok"}, tmpl.Args)
	assert.Equal(t, map[string]string{"color": "green"}, tmpl.Params)
	assert.Equal(t, `{{ badge "build ok" color=green }}`, tmpl.Raw)
}

func TestTemplateParserParamKeys(t *testing.T) {
	doc := parseExtended(t, `{{ widget x/onmouseover=alert(1) data-id=7 "a b"=c }}`)

	templates := collectKind(doc, KindTemplate)
	require.Len(t, templates, 1)
	tmpl := templates[0].(*Template)
	assert.Equal(t, []string{"x/onmouseover=alert(1)", "a b=c"}, tmpl.Args)
	assert.Equal(t, map[string]string{"data-id": "7"}, tmpl.Params)
}

func TestTemplateParserRejectsBadNames(t *testing.T) {
	doc := parseExtended(t, "{{ 9lives }} and {{}}\n")
	assert.Empty(t, collectKind(doc, KindTemplate))
}

func TestEmojiParser(t *testing.T) {
	doc := parseExtended(t, ":tada: shipped at 10:30:00 :+1:\n")

	var codes []string
	for _, n := range collectKind(doc, KindEmoji) {
		codes = append(codes, n.(*Emoji).Shortcode)
	}
	assert.Equal(t, []string{"tada", "+1"}, codes)
}

func TestSplitTemplateFields(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "k=v w"}, splitTemplateFields(`a "b c" k='v w'`))
	assert.Empty(t, splitTemplateFields("   "))
}
