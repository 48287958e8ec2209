package html

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rgonek/extmd/macro"
	"github.com/rgonek/extmd/render"
	"github.com/rgonek/extmd/syntax"
	"github.com/rgonek/extmd/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

func renderMarkdown(t *testing.T, markdown string, opts Options) render.Result[string] {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, syntax.Default()))
	source := []byte(markdown)
	tr, _ := tree.Lower(md.Parser().Parse(text.NewReader(source)), source, tree.LowerOptions{MergeHTML: true})

	r, err := New(opts)
	require.NoError(t, err)
	return r.Render(tr, macro.Extract(tr))
}

func query(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFuncsCoverBuiltinRegistry(t *testing.T) {
	funcs := Funcs(Options{})
	for _, typ := range tree.Builtin().Types() {
		assert.Contains(t, funcs, typ)
	}
	assert.Len(t, funcs, len(tree.Builtin().Types()))
}

func TestHeadingAndParagraph(t *testing.T) {
	result := renderMarkdown(t, "# Title\n\ntext\n", Options{})
	require.Len(t, result.Output, 2)

	doc := query(t, result.Document)
	heading := doc.Find("h1#title")
	require.Equal(t, 1, heading.Length())
	assert.Equal(t, "Title", heading.Text())
	assert.Equal(t, "#title", heading.Find("a.anchor").AttrOr("href", ""))
	assert.Equal(t, "text", doc.Find("p").Text())
}

func TestHeadingMacros(t *testing.T) {
	markdown := "<!-- heading: no-link -->\n<!-- h2: align-center, use-hash#setup-guide -->\n## Setup\n"
	result := renderMarkdown(t, markdown, Options{})
	require.Len(t, result.Output, 1)

	doc := query(t, result.Document)
	heading := doc.Find("h2#setup-guide")
	require.Equal(t, 1, heading.Length())
	assert.Equal(t, "center", heading.AttrOr("align", ""))
	assert.Equal(t, 0, heading.Find("a").Length())
	assert.NotContains(t, result.Document, "<!--")
}

func TestParagraphTightness(t *testing.T) {
	tight := query(t, renderMarkdown(t, "- a\n- b\n", Options{}).Document)
	assert.Equal(t, 2, tight.Find("li").Length())
	assert.Equal(t, 0, tight.Find("li p").Length())

	loose := query(t, renderMarkdown(t, "- a\n\n- b\n", Options{}).Document)
	assert.Equal(t, 2, loose.Find("li p").Length())
}

func TestOrderedListStart(t *testing.T) {
	one := query(t, renderMarkdown(t, "1. a\n2. b\n", Options{}).Document)
	_, exists := one.Find("ol").Attr("start")
	assert.False(t, exists)

	five := query(t, renderMarkdown(t, "5. a\n6. b\n", Options{}).Document)
	assert.Equal(t, "5", five.Find("ol").AttrOr("start", ""))

	bullet := query(t, renderMarkdown(t, "- a\n", Options{}).Document)
	_, exists = bullet.Find("ul").Attr("start")
	assert.False(t, exists)
}

func TestSafeModeLink(t *testing.T) {
	markdown := "click [here](javascript:alert(1)) or [there](https://example.com)\n"

	safe := renderMarkdown(t, markdown, Options{Safe: true})
	assert.Contains(t, safe.Document, OmissionNotice)
	doc := query(t, safe.Document)
	require.Equal(t, 1, doc.Find("a").Length())
	assert.Equal(t, "https://example.com", doc.Find("a").AttrOr("href", ""))
	require.Len(t, safe.Warnings, 1)
	assert.Equal(t, tree.WarningUnsafeContent, safe.Warnings[0].Type)

	unsafe := renderMarkdown(t, markdown, Options{})
	assert.NotContains(t, unsafe.Document, OmissionNotice)
	assert.Contains(t, unsafe.Document, `href="javascript:alert(1)"`)
}

func TestSafeModeImage(t *testing.T) {
	result := renderMarkdown(t, "![x](data:text/html;base64,AAAA) ![ok](data:image/png;base64,AAAA)\n", Options{Safe: true})

	doc := query(t, result.Document)
	assert.Equal(t, 1, doc.Find("img").Length())
	assert.Equal(t, "ok", doc.Find("img").AttrOr("alt", ""))
	assert.Contains(t, result.Document, OmissionNotice)
}

func TestLinkDestinationEntities(t *testing.T) {
	result := renderMarkdown(t, "[q](/search?a=1&amp;b=2) <foo@bar.com>\n", Options{})
	assert.Contains(t, result.Document, `href="/search?a=1&amp;b=2"`)
	assert.NotContains(t, result.Document, "&amp;amp;")
	assert.Contains(t, result.Document, `href="mailto:foo@bar.com"`)

	safe := renderMarkdown(t, "[x](&#106;avascript:alert(1)) ![y](&#x6A;avascript:alert(1))\n", Options{Safe: true})
	doc := query(t, safe.Document)
	assert.Equal(t, 0, doc.Find("a").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
	assert.Equal(t, 2, strings.Count(safe.Document, OmissionNotice))
	require.Len(t, safe.Warnings, 2)
}

func TestRawHTMLPolicies(t *testing.T) {
	markdown := "<script>alert(1)</script>\n\ntext <b onclick=\"x()\">bold</b>\n"

	kept := renderMarkdown(t, markdown, Options{})
	assert.Contains(t, kept.Document, "<script>")
	assert.Contains(t, kept.Document, "onclick")

	sanitized := renderMarkdown(t, markdown, Options{Safe: true})
	assert.NotContains(t, sanitized.Document, "<script>")
	assert.NotContains(t, sanitized.Document, "onclick")
	assert.Contains(t, sanitized.Document, "<b>")

	omitted := renderMarkdown(t, markdown, Options{RawHTML: RawHTMLOmit})
	assert.NotContains(t, omitted.Document, "<script>")
	assert.NotContains(t, omitted.Document, "<b")
	assert.Contains(t, omitted.Document, "bold")
	require.NotEmpty(t, omitted.Warnings)
	for _, w := range omitted.Warnings {
		assert.Equal(t, tree.WarningDroppedFeature, w.Type)
	}
}

func TestMergedHTMLElement(t *testing.T) {
	markdown := "<div class=\"note\" onclick=\"x()\">\n\n**bold** text\n\n</div>\n"

	kept := query(t, renderMarkdown(t, markdown, Options{}).Document)
	assert.Equal(t, "bold", kept.Find("div.note > p > strong").Text())

	sanitized := renderMarkdown(t, markdown, Options{RawHTML: RawHTMLSanitize})
	assert.NotContains(t, sanitized.Document, "onclick")
	assert.Equal(t, 1, query(t, sanitized.Document).Find("div > p > strong").Length())

	omitted := renderMarkdown(t, markdown, Options{RawHTML: RawHTMLOmit})
	assert.NotContains(t, omitted.Document, "<div")
	assert.Equal(t, 1, query(t, omitted.Document).Find("p > strong").Length())
}

func TestTableSections(t *testing.T) {
	result := renderMarkdown(t, "| a | b |\n|:-:|---|\n| 1 | 2 |\n| 3 | 4 |\n", Options{})

	doc := query(t, result.Document)
	assert.Equal(t, 2, doc.Find("thead th").Length())
	assert.Equal(t, 4, doc.Find("tbody td").Length())
	assert.Equal(t, "text-align: center", doc.Find("thead th").First().AttrOr("style", ""))
	_, styled := doc.Find("tbody td").Last().Attr("style")
	assert.False(t, styled)
}

func TestExtendedInlineNodes(t *testing.T) {
	markdown := "ship it :rocket: :not_a_real_emoji_code: $e=mc^2$ {{badge ok color=green}}\n"
	result := renderMarkdown(t, markdown, Options{})
	doc := query(t, result.Document)

	emoji := doc.Find("span.emoji")
	require.Equal(t, 1, emoji.Length())
	assert.NotEmpty(t, emoji.Text())
	assert.NotEqual(t, ":rocket:", emoji.Text())
	assert.Contains(t, result.Document, ":not_a_real_emoji_code:")

	assert.Equal(t, "e=mc^2", doc.Find("span.math.inline").Text())

	template := doc.Find("span.template")
	assert.Equal(t, "badge", template.AttrOr("data-name", ""))
	assert.Equal(t, "ok", template.AttrOr("data-args", ""))
	assert.Equal(t, "green", template.AttrOr("data-param-color", ""))
}

func TestTemplateParamKeysAreSafe(t *testing.T) {
	attrNames := func(t *testing.T, document string) []string {
		t.Helper()
		spans := query(t, document).Find("span.template")
		require.Equal(t, 1, spans.Length())
		var names []string
		for _, attr := range spans.Nodes[0].Attr {
			names = append(names, attr.Key)
		}
		return names
	}

	t.Run("markdown key with attribute syntax stays an argument", func(t *testing.T) {
		result := renderMarkdown(t, "{{widget x/onmouseover=alert(1)}}\n", Options{Safe: true})

		assert.ElementsMatch(t, []string{"class", "data-name", "data-args"}, attrNames(t, result.Document))
		span := query(t, result.Document).Find("span.template")
		assert.Equal(t, "x/onmouseover=alert(1)", span.AttrOr("data-args", ""))
		assert.Empty(t, result.Warnings)
	})

	t.Run("tree params with unsafe keys are dropped", func(t *testing.T) {
		tr := tree.New(nil)
		para := tr.Add(0, tree.TypeParagraph, "", nil)
		tr.Add(para, tree.TypeTemplate, "{{widget}}", tree.TemplateData{
			Name: "widget",
			Params: map[string]string{
				"x/onmouseover": "alert(1)",
				`a" onclick="x`: "y",
				"Color":         "green",
			},
		})

		r, err := New(Options{Safe: true})
		require.NoError(t, err)
		result := r.Render(tr, macro.Extract(tr))

		assert.ElementsMatch(t, []string{"class", "data-name", "data-param-color"}, attrNames(t, result.Document))
		assert.NotContains(t, result.Document, "onmouseover")
		assert.NotContains(t, result.Document, "onclick")
		require.Len(t, result.Warnings, 2)
		for _, warning := range result.Warnings {
			assert.Equal(t, tree.WarningUnsafeContent, warning.Type)
			assert.Equal(t, string(tree.TypeTemplate), warning.NodeType)
		}
	})
}

func TestMathBlockAndCode(t *testing.T) {
	markdown := "$$\na < b\n$$\n\n```go\nx := 1 < 2\n```\n"
	doc := query(t, renderMarkdown(t, markdown, Options{}).Document)

	assert.Equal(t, "a < b", doc.Find("div.math.display").Text())
	assert.Equal(t, "x := 1 < 2\n", doc.Find("pre code.language-go").Text())
}

func TestTaskList(t *testing.T) {
	doc := query(t, renderMarkdown(t, "- [x] done\n- [ ] todo\n", Options{}).Document)

	boxes := doc.Find("input[type=checkbox]")
	require.Equal(t, 2, boxes.Length())
	_, checked := boxes.First().Attr("checked")
	assert.True(t, checked)
	_, checked = boxes.Last().Attr("checked")
	assert.False(t, checked)
}

func TestPlaceholderForUnknownType(t *testing.T) {
	tr := tree.New(nil)
	tr.Add(0, "admonition", "", nil)
	para := tr.Add(0, tree.TypeParagraph, "", nil)
	tr.Add(para, tree.TypeText, "still here", nil)

	r, err := New(Options{})
	require.NoError(t, err)
	result := r.Render(tr, macro.Extract(tr))

	assert.Equal(t, Placeholder("admonition"), result.Output[0])
	assert.Contains(t, result.Document, "[unsupported node: admonition]")
	assert.Contains(t, result.Document, "still here")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, tree.WarningUnknownNode, result.Warnings[0].Type)
}
