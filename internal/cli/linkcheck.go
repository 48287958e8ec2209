package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rgonek/extmd/compiler"
)

// checkLocalLinks reports relative destinations whose target file does not
// exist. Paths resolve against the directory of the source file.
func checkLocalLinks(_ context.Context, in compiler.LinkInput) (compiler.LinkOutput, error) {
	parsed, err := url.Parse(in.Destination)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" || parsed.Path == "" {
		return compiler.LinkOutput{}, nil
	}

	target := filepath.FromSlash(parsed.Path)
	if !filepath.IsAbs(target) && in.SourcePath != "" {
		target = filepath.Join(filepath.Dir(in.SourcePath), target)
	}

	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return compiler.LinkOutput{}, fmt.Errorf("%s: %w", target, compiler.ErrUnresolved)
		}
		return compiler.LinkOutput{}, err
	}

	return compiler.LinkOutput{}, nil
}
