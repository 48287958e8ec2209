package syntax

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	templateNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)
	// templateParamPattern keeps parameter keys usable as an attribute
	// name suffix.
	templateParamPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

type MathInlineParser struct{}

func NewMathInlineParser() parser.InlineParser {
	return &MathInlineParser{}
}

func (p *MathInlineParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse follows the pandoc rule: no space after the opening dollar, no space
// before the closing one, and the closing dollar is not followed by a digit.
func (p *MathInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != '$' || line[1] == '$' || isSpaceByte(line[1]) {
		return nil
	}

	for idx := 2; idx < len(line); idx++ {
		switch line[idx] {
		case '\\':
			idx++
		case '\n', '\r':
			return nil
		case '$':
			if isSpaceByte(line[idx-1]) {
				continue
			}
			if idx+1 < len(line) && line[idx+1] >= '0' && line[idx+1] <= '9' {
				continue
			}
			block.Advance(idx + 1)
			return NewMathInline(string(line[1:idx]))
		}
	}
	return nil
}

type TemplateParser struct{}

func NewTemplateParser() parser.InlineParser {
	return &TemplateParser{}
}

func (p *TemplateParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *TemplateParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 5 || line[0] != '{' || line[1] != '{' {
		return nil
	}

	end := bytes.Index(line[2:], []byte("}}"))
	if end < 0 {
		return nil
	}
	inner := string(line[2 : 2+end])
	if strings.ContainsAny(inner, "\n\r") {
		return nil
	}

	fields := splitTemplateFields(strings.TrimSpace(inner))
	if len(fields) == 0 || !templateNamePattern.MatchString(fields[0]) {
		return nil
	}

	var args []string
	params := map[string]string{}
	for _, field := range fields[1:] {
		if key, value, ok := strings.Cut(field, "="); ok && templateParamPattern.MatchString(key) {
			params[key] = value
			continue
		}
		args = append(args, field)
	}

	consumed := 2 + end + 2
	block.Advance(consumed)
	return NewTemplate(fields[0], args, params, string(line[:consumed]))
}

// splitTemplateFields splits on spaces outside quotes. Quotes are dropped
// from the values.
func splitTemplateFields(s string) []string {
	var fields []string
	var current strings.Builder
	var quote rune
	pending := false

	for _, r := range s {
		switch {
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
			pending = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && unicode.IsSpace(r):
			if pending {
				fields = append(fields, current.String())
				current.Reset()
				pending = false
			}
		default:
			current.WriteRune(r)
			pending = true
		}
	}
	if pending {
		fields = append(fields, current.String())
	}

	return fields
}

type EmojiParser struct{}

func NewEmojiParser() parser.InlineParser {
	return &EmojiParser{}
}

func (p *EmojiParser) Trigger() []byte {
	return []byte{':'}
}

func (p *EmojiParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != ':' {
		return nil
	}
	if prev := block.PrecendingCharacter(); unicode.IsLetter(prev) || unicode.IsDigit(prev) {
		return nil
	}

	idx := 1
	for idx < len(line) && isShortcodeByte(line[idx]) {
		idx++
	}
	if idx == 1 || idx >= len(line) || line[idx] != ':' {
		return nil
	}

	block.Advance(idx + 1)
	return NewEmoji(string(line[1:idx]))
}

func isShortcodeByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '+' || ch == '-'
}

func isSpaceByte(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
