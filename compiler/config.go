package compiler

import (
	"fmt"
	"strings"

	"github.com/rgonek/extmd/render/html"
)

// RawHTMLPolicy decides what happens to raw HTML in the source.
type RawHTMLPolicy = html.RawHTMLPolicy

const (
	RawHTMLKeep     RawHTMLPolicy = html.RawHTMLKeep
	RawHTMLSanitize RawHTMLPolicy = html.RawHTMLSanitize
	RawHTMLOmit     RawHTMLPolicy = html.RawHTMLOmit
)

// Config configures a Compiler. The zero value enables every extended
// construct and renders in permissive mode.
type Config struct {
	// Safe replaces script-capable link and image destinations with an
	// omission notice.
	Safe bool `json:"safe,omitempty" yaml:"safe,omitempty"`
	// RawHTML defaults to sanitize in safe mode and keep otherwise.
	RawHTML RawHTMLPolicy `json:"rawHTML,omitempty" yaml:"rawHTML,omitempty"`

	DisableMath      bool `json:"disableMath,omitempty" yaml:"disableMath,omitempty"`
	DisableTemplates bool `json:"disableTemplates,omitempty" yaml:"disableTemplates,omitempty"`
	DisableEmoji     bool `json:"disableEmoji,omitempty" yaml:"disableEmoji,omitempty"`
	DisableHTMLMerge bool `json:"disableHTMLMerge,omitempty" yaml:"disableHTMLMerge,omitempty"`

	HeadingOffset int `json:"headingOffset,omitempty" yaml:"headingOffset,omitempty"`
	// EmojiAliases maps extra shortcodes onto GitHub shortcodes.
	EmojiAliases   map[string]string `json:"emojiAliases,omitempty" yaml:"emojiAliases,omitempty"`
	ResolutionMode ResolutionMode    `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	LinkHook       LinkHook          `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.RawHTML == "" {
		if c.Safe {
			c.RawHTML = RawHTMLSanitize
		} else {
			c.RawHTML = RawHTMLKeep
		}
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}
	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.EmojiAliases = cloneStringMap(c.EmojiAliases)
	cloned.LinkHook = c.LinkHook
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.RawHTML != RawHTMLKeep &&
		c.RawHTML != RawHTMLSanitize &&
		c.RawHTML != RawHTMLOmit {
		return fmt.Errorf("invalid rawHTML %q", c.RawHTML)
	}

	if c.Safe && c.RawHTML == RawHTMLKeep {
		return fmt.Errorf("rawHTML %q is not allowed in safe mode", c.RawHTML)
	}

	if c.HeadingOffset < -5 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between -5 and 5, got %d", c.HeadingOffset)
	}

	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	for alias, shortcode := range c.EmojiAliases {
		if strings.TrimSpace(alias) == "" || strings.TrimSpace(shortcode) == "" {
			return fmt.Errorf("emojiAliases keys and values must be non-empty")
		}
	}

	return nil
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}

	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}
