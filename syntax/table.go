// Package syntax holds the trigger table that plugs extra block and inline
// constructs into goldmark, together with the parsers and AST nodes for
// math fences, inline math, templates and emoji shortcodes.
package syntax

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

// PriorityAlways is the bucket for block rules without a trigger byte. They
// are tried at every position before any other rule.
const PriorityAlways = -1

// inlinePriority sits after goldmark's own inline parsers (100-500).
const inlinePriority = 600

var (
	// ErrDuplicateRule is returned when two rules claim the same trigger.
	ErrDuplicateRule = errors.New("duplicate trigger rule")
	// ErrInvalidRule is returned for malformed rules.
	ErrInvalidRule = errors.New("invalid trigger rule")
)

// baselineSpecials are the characters goldmark's CommonMark inline parsers
// already stop at.
const baselineSpecials = "`*_[]!<&\\~\n"

// BlockRule starts a block construct. Priority uses goldmark's scale, lower
// runs first: setext headings are 100, fenced code 700, paragraphs 1000.
type BlockRule struct {
	Name     string
	Priority int
	Parser   parser.BlockParser
}

// InlineRule owns one leading character of inline text.
type InlineRule struct {
	Name   string
	Char   byte
	Parser parser.InlineParser
}

// Table maps scan positions to the rules that may start there.
type Table struct {
	blocks  []BlockRule
	inlines map[byte]InlineRule
	special [256]bool
}

// NewTable returns a table seeded with the baseline special characters.
func NewTable() *Table {
	t := &Table{inlines: map[byte]InlineRule{}}
	for i := 0; i < len(baselineSpecials); i++ {
		t.special[baselineSpecials[i]] = true
	}
	return t
}

// AddBlock registers a block rule. Conflicts are reported here rather than
// at parse time.
func (t *Table) AddBlock(rule BlockRule) error {
	if rule.Parser == nil {
		return fmt.Errorf("%w: block rule %q has no parser", ErrInvalidRule, rule.Name)
	}
	triggers := rule.Parser.Trigger()
	if rule.Priority == PriorityAlways && len(triggers) != 0 {
		return fmt.Errorf("%w: block rule %q in the always bucket must not declare triggers", ErrInvalidRule, rule.Name)
	}
	if rule.Priority != PriorityAlways && len(triggers) == 0 {
		return fmt.Errorf("%w: block rule %q needs a trigger byte or the always bucket", ErrInvalidRule, rule.Name)
	}
	if rule.Priority < PriorityAlways {
		return fmt.Errorf("%w: block rule %q has priority %d", ErrInvalidRule, rule.Name, rule.Priority)
	}

	for _, existing := range t.blocks {
		if existing.Priority != rule.Priority {
			continue
		}
		if overlaps(existing.Parser.Trigger(), triggers) {
			return fmt.Errorf("%w: %q and %q share priority %d", ErrDuplicateRule, existing.Name, rule.Name, rule.Priority)
		}
	}

	t.blocks = append(t.blocks, rule)
	return nil
}

// AddInline registers an inline rule and adds its character to the
// maybe-special class.
func (t *Table) AddInline(rule InlineRule) error {
	if rule.Parser == nil {
		return fmt.Errorf("%w: inline rule %q has no parser", ErrInvalidRule, rule.Name)
	}
	triggers := rule.Parser.Trigger()
	if len(triggers) != 1 || triggers[0] != rule.Char {
		return fmt.Errorf("%w: inline rule %q must trigger on exactly %q", ErrInvalidRule, rule.Name, rule.Char)
	}
	if existing, ok := t.inlines[rule.Char]; ok {
		return fmt.Errorf("%w: %q and %q both own %q", ErrDuplicateRule, existing.Name, rule.Name, rule.Char)
	}

	t.inlines[rule.Char] = rule
	t.special[rule.Char] = true
	return nil
}

// MaybeSpecial reports whether c may start an inline construct. Characters
// outside this class are consumed as plain text.
func (t *Table) MaybeSpecial(c byte) bool {
	return t.special[c]
}

// InlineRule returns the rule owning c.
func (t *Table) InlineRule(c byte) (InlineRule, bool) {
	rule, ok := t.inlines[c]
	return rule, ok
}

// InlineRules returns every inline rule ordered by character.
func (t *Table) InlineRules() []InlineRule {
	out := make([]InlineRule, 0, len(t.inlines))
	for _, rule := range t.inlines {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

// BlockRules returns the rules applicable when a line starts with c: the
// always bucket first, then ascending priority, registration order breaking
// ties.
func (t *Table) BlockRules(c byte) []BlockRule {
	var out []BlockRule
	for _, rule := range t.blocks {
		triggers := rule.Parser.Trigger()
		if len(triggers) == 0 || containsByte(triggers, c) {
			out = append(out, rule)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// AllBlockRules returns every block rule in dispatch order.
func (t *Table) AllBlockRules() []BlockRule {
	out := make([]BlockRule, len(t.blocks))
	copy(out, t.blocks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Extend implements goldmark.Extender.
func (t *Table) Extend(m goldmark.Markdown) {
	blocks := make([]util.PrioritizedValue, 0, len(t.blocks))
	for _, rule := range t.AllBlockRules() {
		priority := rule.Priority
		if priority == PriorityAlways {
			priority = 0
		}
		blocks = append(blocks, util.Prioritized(rule.Parser, priority))
	}

	inlines := make([]util.PrioritizedValue, 0, len(t.inlines))
	for _, rule := range t.InlineRules() {
		inlines = append(inlines, util.Prioritized(rule.Parser, inlinePriority))
	}

	m.Parser().AddOptions(
		parser.WithBlockParsers(blocks...),
		parser.WithInlineParsers(inlines...),
	)
}

func overlaps(left, right []byte) bool {
	if len(left) == 0 && len(right) == 0 {
		return true
	}
	for _, ch := range left {
		if containsByte(right, ch) {
			return true
		}
	}
	return false
}

func containsByte(set []byte, c byte) bool {
	for _, ch := range set {
		if ch == c {
			return true
		}
	}
	return false
}
