// Package compiler runs the whole pipeline: markdown source is parsed with
// the extended syntax, lowered into a tree, scanned for markers, rendered to
// HTML and partitioned into layout slots.
package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgonek/extmd/layout"
	"github.com/rgonek/extmd/macro"
	"github.com/rgonek/extmd/nav"
	"github.com/rgonek/extmd/render"
	"github.com/rgonek/extmd/render/html"
	"github.com/rgonek/extmd/syntax"
	"github.com/rgonek/extmd/tree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Compiler compiles extended markdown to HTML. It is safe for concurrent use
// as long as the configured LinkHook is.
type Compiler struct {
	config   Config
	markdown goldmark.Markdown
	registry *tree.Registry
	renderer *render.Renderer[string]
}

// Result is the output of one compilation.
type Result struct {
	// Nav is nil when the document has no headings.
	Nav []*nav.Node `json:"nav,omitempty" yaml:"nav,omitempty"`
	// Output holds the rendered top-level blocks.
	Output   []string               `json:"output" yaml:"output"`
	Slots    []*layout.Slot[string] `json:"slots" yaml:"slots"`
	Markers  []macro.LayoutMarker   `json:"markers,omitempty" yaml:"markers,omitempty"`
	Warnings []tree.Warning         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HTML returns the rendered document.
func (r Result) HTML() string {
	return strings.Join(r.Output, "")
}

type state struct {
	ctx      context.Context
	config   Config
	options  CompileOptions
	warnings []tree.Warning
}

// New creates a Compiler with the given config. Configuration problems,
// including conflicting syntax rules, are reported here.
func New(config Config) (*Compiler, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := syntax.New(syntax.Options{
		DisableMath:      cfg.DisableMath,
		DisableTemplates: cfg.DisableTemplates,
		DisableEmoji:     cfg.DisableEmoji,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build syntax table: %w", err)
	}

	renderer, err := html.New(html.Options{
		Safe:         cfg.Safe,
		RawHTML:      cfg.RawHTML,
		EmojiAliases: cfg.EmojiAliases,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	return &Compiler{
		config: cfg,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, table),
		),
		registry: tree.Builtin(),
		renderer: renderer,
	}, nil
}

// Compile compiles a markdown document.
func (c *Compiler) Compile(markdown string) (Result, error) {
	return c.CompileWithContext(context.Background(), markdown, CompileOptions{})
}

// CompileWithContext compiles a markdown document. ctx is only consulted
// while link hooks run; the render walk itself is not interruptible.
func (c *Compiler) CompileWithContext(ctx context.Context, markdown string, opts CompileOptions) (Result, error) {
	s := &state{
		ctx:     ctx,
		config:  c.config,
		options: opts,
	}

	source := []byte(markdown)
	doc := c.markdown.Parser().Parse(text.NewReader(source))

	t, lowerWarnings := tree.Lower(doc, source, tree.LowerOptions{
		MergeHTML:     !c.config.DisableHTMLMerge,
		HeadingOffset: c.config.HeadingOffset,
	})
	s.warnings = append(s.warnings, lowerWarnings...)

	if err := c.registry.ValidateTree(t); err != nil {
		return Result{}, fmt.Errorf("invalid tree: %w", err)
	}

	markers := macro.Extract(t)
	s.warnings = append(s.warnings, markers.Warnings...)

	if err := s.resolveLinks(t); err != nil {
		return Result{}, err
	}

	rendered := c.renderer.Render(t, markers)
	s.warnings = append(s.warnings, rendered.Warnings...)

	return Result{
		Nav:      rendered.Nav,
		Output:   rendered.Output,
		Slots:    layout.Partition(rendered.Output, markers.Layout),
		Markers:  markers.Layout,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType tree.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, tree.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
