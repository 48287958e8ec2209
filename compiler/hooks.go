package compiler

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a link hook could not resolve a destination.
var ErrUnresolved = errors.New("unresolved link reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort keeps the original destination and records a
	// warning.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails compilation when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// CompileOptions carries optional per-compilation context.
type CompileOptions struct {
	SourcePath string
}

// LinkHook can rewrite link and image destinations before rendering.
type LinkHook func(ctx context.Context, in LinkInput) (LinkOutput, error)

// LinkInput describes a link or image about to be rendered.
type LinkInput struct {
	SourcePath  string
	Destination string
	Title       string
	Image       bool
	// Section is the title of the nearest heading before the link.
	Section string
}

// LinkOutput contains hook-provided overrides.
type LinkOutput struct {
	Destination string
	Title       string
	Handled     bool
}
