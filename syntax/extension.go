package syntax

// Options selects which extended constructs are registered.
type Options struct {
	DisableMath      bool
	DisableTemplates bool
	DisableEmoji     bool
}

// mathBlockPriority runs ahead of fenced code (700).
const mathBlockPriority = 650

// New builds a table holding the extended constructs enabled by opts.
func New(opts Options) (*Table, error) {
	t := NewTable()

	if !opts.DisableMath {
		if err := t.AddBlock(BlockRule{Name: "math-block", Priority: mathBlockPriority, Parser: NewMathBlockParser()}); err != nil {
			return nil, err
		}
		if err := t.AddInline(InlineRule{Name: "math-inline", Char: '$', Parser: NewMathInlineParser()}); err != nil {
			return nil, err
		}
	}
	if !opts.DisableTemplates {
		if err := t.AddInline(InlineRule{Name: "template", Char: '{', Parser: NewTemplateParser()}); err != nil {
			return nil, err
		}
	}
	if !opts.DisableEmoji {
		if err := t.AddInline(InlineRule{Name: "emoji", Char: ':', Parser: NewEmojiParser()}); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Default returns a table with every extended construct enabled.
func Default() *Table {
	t, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return t
}
