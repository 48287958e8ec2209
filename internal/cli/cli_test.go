package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rgonek/extmd/compiler"
)

type execResult struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()
	for _, key := range []string{"EXTMD_PRESET", "EXTMD_OUTPUT", "EXTMD_LOG_LEVEL", "EXTMD_RAW_HTML", "EXTMD_SAFE"} {
		t.Setenv(key, "")
	}

	cmd := NewCmdRoot()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	configPath := filepath.Join(t.TempDir(), "missing.yml")
	cmd.SetArgs(append(args, "--config", configPath, "--no-color"))

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRenderHTML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.md", "# Title\n\ntext\n")

	res := execute(t, "", "render", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `<h1 id="title">`)
	assert.Contains(t, res.stdout, "<p>text</p>\n")
}

func TestRenderFromStdin(t *testing.T) {
	res := execute(t, "*hi*\n", "render", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "<p><em>hi</em></p>\n", res.stdout)
}

func TestRenderJSON(t *testing.T) {
	res := execute(t, "# A\n\n<!-- layout: slot#main -->\n\nbody\n", "render", "-o", "json")
	require.NoError(t, res.err)

	var decoded compiler.Result
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &decoded))
	require.Len(t, decoded.Nav, 1)
	assert.Equal(t, "a", decoded.Nav[0].Anchor)
	require.Len(t, decoded.Slots, 2)
	assert.Equal(t, "main", decoded.Slots[1].Name)
}

func TestRenderSafeFlag(t *testing.T) {
	res := execute(t, "[x](javascript:alert(1))\n", "render", "--safe")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[unsafe link omitted]")
	assert.NotContains(t, res.stdout, "javascript:")
	assert.Contains(t, res.stderr, "unsafe link destination omitted")
}

func TestRenderMinimalPreset(t *testing.T) {
	res := execute(t, "price $5$ :smile:\n", "render", "--preset", "minimal")
	require.NoError(t, res.err)
	assert.Equal(t, "<p>price $5$ :smile:</p>\n", res.stdout)
}

func TestRenderRejectsUnknownPreset(t *testing.T) {
	res := execute(t, "x\n", "render", "--preset", "pandoc")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `unknown preset "pandoc"`)
}

func TestRenderRejectsUnknownOutput(t *testing.T) {
	res := execute(t, "x\n", "render", "-o", "pdf")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "output must be one of")
}

func TestRenderMissingFile(t *testing.T) {
	res := execute(t, "", "render", filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "error reading file")
}

func TestNavText(t *testing.T) {
	res := execute(t, "# One\n\n## Two\n\n# Three\n", "nav")
	require.NoError(t, res.err)
	assert.Equal(t, "One #one\n│ Two #two\nThree #three\n", res.stdout)
}

func TestNavEmpty(t *testing.T) {
	res := execute(t, "just text\n", "nav")
	require.NoError(t, res.err)
	assert.Equal(t, "no headings\n", res.stdout)

	res = execute(t, "just text\n", "nav", "-o", "json")
	require.NoError(t, res.err)
	assert.Equal(t, "[]\n", res.stdout)
}

func TestLayoutText(t *testing.T) {
	markdown := "intro\n\n<!-- layout: slot#main -->\n\nbody\n\n<!-- layout: open#aside -->\n\nnote\n"
	res := execute(t, markdown, "layout")
	require.NoError(t, res.err)
	assert.Equal(t,
		"0 (default) 1 block, 13B\n"+
			"1 main 1 block, 12B\n"+
			"│ 0 aside 1 block, 12B\n",
		res.stdout)
}

func TestLayoutYAML(t *testing.T) {
	res := execute(t, "a\n\n<!-- layout: slot#side -->\n\nb\n", "layout", "-o", "yaml")
	require.NoError(t, res.err)

	var decoded struct {
		Markers []struct {
			Position int    `yaml:"position"`
			Kind     string `yaml:"kind"`
			Name     string `yaml:"name"`
		} `yaml:"markers"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &decoded))
	require.Len(t, decoded.Markers, 1)
	assert.Equal(t, 1, decoded.Markers[0].Position)
	assert.Equal(t, "side", decoded.Markers[0].Name)
}

func TestKinds(t *testing.T) {
	res := execute(t, "", "kinds")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "heading")
	assert.Contains(t, res.stdout, "tree.HeadingData")

	res = execute(t, "", "kinds", "-o", "json")
	require.NoError(t, res.err)
	var kinds []kindInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &kinds))
	assert.Contains(t, kinds, kindInfo{Type: "document"})
	assert.Contains(t, kinds, kindInfo{Type: "emoji", Data: "tree.EmojiData"})
}

func TestConfigFileIsApplied(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "output: json\ncompiler:\n  headingOffset: 1\n")

	for _, key := range []string{"EXTMD_PRESET", "EXTMD_OUTPUT", "EXTMD_LOG_LEVEL", "EXTMD_RAW_HTML", "EXTMD_SAFE"} {
		t.Setenv(key, "")
	}
	cmd := NewCmdRoot()
	var stdout bytes.Buffer
	cmd.SetIn(strings.NewReader("# T\n"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"nav", "--config", configPath})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `[{"level":2,"anchor":"t","title":"T"}]`, stdout.String())
}

func TestCheckLocalLinks(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "doc.md", "")
	writeFile(t, dir, "other.md", "")

	tests := []struct {
		name        string
		destination string
		unresolved  bool
	}{
		{name: "existing sibling", destination: "other.md#intro"},
		{name: "missing sibling", destination: "gone.md", unresolved: true},
		{name: "absolute url", destination: "https://example.com/gone.md"},
		{name: "fragment only", destination: "#top"},
		{name: "mailto", destination: "mailto:a@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := checkLocalLinks(context.Background(), compiler.LinkInput{
				SourcePath:  source,
				Destination: tt.destination,
			})
			assert.False(t, out.Handled)
			if tt.unresolved {
				require.Error(t, err)
				assert.True(t, errors.Is(err, compiler.ErrUnresolved))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRenderCheckLinks(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "[gone](gone.md)\n")

	res := execute(t, "", "render", "--check-links", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `href="gone.md"`)
	assert.Contains(t, res.stderr, "unresolved link destination")

	res = execute(t, "", "render", "--check-links", "--preset", "strict", path)
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, compiler.ErrUnresolved))
}
