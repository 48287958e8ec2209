package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/extmd/render"
	"github.com/rgonek/extmd/tree"
)

// resolveLinks runs the link hook over every link and image in document
// order. It rewrites node data before the render pass starts.
func (s *state) resolveLinks(t *tree.Tree) error {
	if s.config.LinkHook == nil {
		return nil
	}

	section := ""
	var walkErr error
	t.Walk(t.Root().ID, func(n *tree.Node) bool {
		if walkErr != nil {
			return false
		}
		switch n.Type {
		case tree.TypeHeading:
			if text, err := render.Stringify(t, n.ID); err == nil && text != "" {
				section = text
			}
		case tree.TypeLink, tree.TypeImage:
			data, ok := n.Data.(tree.LinkData)
			if !ok {
				return true
			}
			output, handled, err := s.applyLinkHook(LinkInput{
				SourcePath:  s.options.SourcePath,
				Destination: data.Destination,
				Title:       data.Title,
				Image:       n.Type == tree.TypeImage,
				Section:     section,
			})
			if err != nil {
				walkErr = err
				return false
			}
			if handled {
				data.Destination = output.Destination
				data.Title = output.Title
				n.Data = data
			}
		}
		return true
	})

	if walkErr != nil {
		return walkErr
	}
	return s.checkContext()
}

func (s *state) applyLinkHook(input LinkInput) (LinkOutput, bool, error) {
	if err := s.checkContext(); err != nil {
		return LinkOutput{}, false, err
	}

	output, err := s.config.LinkHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return LinkOutput{}, false, fmt.Errorf("unresolved link destination %q: %w", input.Destination, err)
			}
			nodeType := tree.TypeLink
			if input.Image {
				nodeType = tree.TypeImage
			}
			s.addWarning(
				tree.WarningUnresolvedReference,
				string(nodeType),
				fmt.Sprintf("unresolved link destination %q; keeping original", input.Destination),
			)
			return LinkOutput{}, false, nil
		}
		return LinkOutput{}, false, fmt.Errorf("link hook failed: %w", err)
	}

	if !output.Handled {
		return LinkOutput{}, false, nil
	}

	output.Destination = strings.TrimSpace(output.Destination)
	output.Title = strings.TrimSpace(output.Title)
	if output.Destination == "" {
		return LinkOutput{}, false, errors.New("invalid link hook output: handled output requires non-empty destination")
	}

	return output, true, nil
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}
