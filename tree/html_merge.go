package tree

import (
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	xhtml "golang.org/x/net/html"
)

var (
	openingTagPattern = regexp.MustCompile(`(?is)^<([a-z][a-z0-9-]*)(\s[^<>]*)?>$`)
	closingTagPattern = regexp.MustCompile(`(?is)^</([a-z][a-z0-9-]*)\s*>$`)
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// parseOpeningTag reports whether raw is exactly one non-void opening tag
// and returns its name and normalized attribute string.
func parseOpeningTag(raw string) (string, string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !openingTagPattern.MatchString(trimmed) || strings.HasSuffix(trimmed, "/>") {
		return "", "", false
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(trimmed))
	if tokenizer.Next() != xhtml.StartTagToken {
		return "", "", false
	}
	token := tokenizer.Token()
	if voidElements[token.Data] {
		return "", "", false
	}

	attrs := make([]string, 0, len(token.Attr))
	for _, attr := range token.Attr {
		attrs = append(attrs, attr.Key+`="`+stdhtml.EscapeString(attr.Val)+`"`)
	}

	return token.Data, strings.Join(attrs, " "), true
}

func parseClosingTag(raw string) (string, bool) {
	match := closingTagPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if len(match) != 2 {
		return "", false
	}
	return strings.ToLower(match[1]), true
}

// findClosingBlock returns the index of the HTML block closing the tag opened
// at children[start], or -1. Nested tags of the same name are counted.
func findClosingBlock(children []ast.Node, start int, tag string, source []byte) int {
	depth := 1
	for idx := start + 1; idx < len(children); idx++ {
		htmlNode, ok := children[idx].(*ast.HTMLBlock)
		if !ok {
			continue
		}
		raw := htmlBlockText(htmlNode, source)
		if name, _, isOpen := parseOpeningTag(raw); isOpen && name == tag {
			depth++
			continue
		}
		if name, isClose := parseClosingTag(raw); isClose && name == tag {
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return -1
}

func isSingleComment(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return strings.HasPrefix(trimmed, "<!--") &&
		strings.HasSuffix(trimmed, "-->") &&
		strings.Count(trimmed, "<!--") == 1
}
