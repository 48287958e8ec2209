package syntax

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const mathFence = "$$"

type MathBlockParser struct{}

func NewMathBlockParser() parser.BlockParser {
	return &MathBlockParser{}
}

func (p *MathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *MathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	trimmed := strings.TrimLeft(trimLineEnding(string(line)), " \t")
	if !strings.HasPrefix(trimmed, mathFence) {
		return nil, parser.NoChildren
	}

	node := NewMathBlock()
	rest := strings.TrimSpace(trimmed[len(mathFence):])
	if rest != "" {
		if strings.HasSuffix(rest, mathFence) {
			// $$ body $$ on one line
			if body := strings.TrimSpace(strings.TrimSuffix(rest, mathFence)); body != "" {
				node.appendBodyLine(body)
			}
			node.closed = true
		} else {
			node.appendBodyLine(rest)
		}
	}

	advanceToLineEnd(reader, line, segment)
	return node, parser.NoChildren
}

// Continue receives lines with container prefixes (blockquote markers, list
// indentation) already consumed, so body lines are read here, one per call.
func (p *MathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	block := node.(*MathBlock)
	if block.closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}

	rawLine := trimLineEnding(string(line))
	if strings.TrimSpace(rawLine) == mathFence {
		block.closed = true
		advanceToLineEnd(reader, line, segment)
		return parser.Close
	}

	block.appendBodyLine(rawLine)
	advanceToLineEnd(reader, line, segment)
	return parser.Continue | parser.NoChildren
}

func (p *MathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *MathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (p *MathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

// advanceToLineEnd consumes the current line but leaves its newline; the
// block loop advances to the next line itself.
func advanceToLineEnd(reader text.Reader, line []byte, segment text.Segment) {
	newline := 0
	if len(line) > 0 && line[len(line)-1] == '\n' {
		newline = 1
	}
	reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
}

func trimLineEnding(raw string) string {
	raw = strings.TrimSuffix(raw, "\n")
	return strings.TrimSuffix(raw, "\r")
}
