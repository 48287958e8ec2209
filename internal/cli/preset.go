package cli

import (
	"fmt"
	"strings"

	"github.com/rgonek/extmd/compiler"
)

const (
	presetBalanced = "balanced"
	presetSafe     = "safe"
	presetStrict   = "strict"
	presetMinimal  = "minimal"
)

func presetConfig(preset string) (compiler.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return compiler.Config{}, nil
	case presetSafe:
		return compiler.Config{
			Safe: true,
		}, nil
	case presetStrict:
		return compiler.Config{
			Safe:           true,
			RawHTML:        compiler.RawHTMLOmit,
			ResolutionMode: compiler.ResolutionStrict,
		}, nil
	case presetMinimal:
		return compiler.Config{
			DisableMath:      true,
			DisableTemplates: true,
			DisableEmoji:     true,
			DisableHTMLMerge: true,
		}, nil
	default:
		return compiler.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, safe, strict, minimal)", preset)
	}
}

// overlayConfig applies the values set in override on top of base.
func overlayConfig(base, override compiler.Config) compiler.Config {
	if override.Safe {
		base.Safe = true
	}
	if override.RawHTML != "" {
		base.RawHTML = override.RawHTML
	}
	base.DisableMath = base.DisableMath || override.DisableMath
	base.DisableTemplates = base.DisableTemplates || override.DisableTemplates
	base.DisableEmoji = base.DisableEmoji || override.DisableEmoji
	base.DisableHTMLMerge = base.DisableHTMLMerge || override.DisableHTMLMerge
	if override.HeadingOffset != 0 {
		base.HeadingOffset = override.HeadingOffset
	}
	if len(override.EmojiAliases) > 0 {
		base.EmojiAliases = override.EmojiAliases
	}
	if override.ResolutionMode != "" {
		base.ResolutionMode = override.ResolutionMode
	}
	return base
}

// resolveConfig layers the preset, the config file and the command line
// flags, later layers winning.
func resolveConfig(preset string, file compiler.Config, safe, noHTML bool) (compiler.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return compiler.Config{}, err
	}

	cfg = overlayConfig(cfg, file)

	if safe {
		cfg.Safe = true
		if cfg.RawHTML == compiler.RawHTMLKeep {
			cfg.RawHTML = compiler.RawHTMLSanitize
		}
	}
	if noHTML {
		cfg.RawHTML = compiler.RawHTMLOmit
	}

	return cfg, nil
}
