package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgonek/extmd/compiler"
	"github.com/rgonek/extmd/internal/config"
	"github.com/rgonek/extmd/internal/logger"
)

// runtime is the resolved state shared by the compiling subcommands.
type runtime struct {
	output   string
	noColor  bool
	compiler *compiler.Compiler
	log      *logger.Logger
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	output, _ := flags.GetString("output")
	preset, _ := flags.GetString("preset")
	safe, _ := flags.GetBool("safe")
	noHTML, _ := flags.GetBool("no-html")
	checkLinks, _ := flags.GetBool("check-links")
	logLevel, _ := flags.GetString("log-level")
	noColor, _ := flags.GetBool("no-color")

	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	fileCfg, fromFile, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, err
	}

	if logLevel == "" {
		logLevel = fileCfg.LogLevel
	}
	log := logger.NewWithLevel(cmd.ErrOrStderr(), logger.ParseLevel(logLevel))
	log.ConfigLoaded(configPath, fromFile)

	if preset == "" {
		preset = fileCfg.Preset
	}
	if output == "" {
		output = fileCfg.Output
	}
	if output == "" {
		output = config.OutputHTML
	}
	check := config.Config{Output: output}
	if err := check.Validate(); err != nil {
		return nil, err
	}

	cfg, err := resolveConfig(preset, fileCfg.Compiler, safe, noHTML)
	if err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}
	if checkLinks {
		cfg.LinkHook = checkLocalLinks
	}

	comp, err := compiler.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if noColor {
		color.NoColor = true
	}

	return &runtime{
		output:   output,
		noColor:  noColor,
		compiler: comp,
		log:      log,
	}, nil
}

// compile reads the input named by args and compiles it. Warnings are
// logged.
func (r *runtime) compile(cmd *cobra.Command, args []string) (compiler.Result, error) {
	path := ""
	if len(args) > 0 && args[0] != "-" {
		path = args[0]
	}

	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return compiler.Result{}, err
	}

	runID := uuid.NewString()
	source := path
	if source == "" {
		source = "stdin"
	}
	r.log.CompileStarted(runID, source, len(data))

	started := time.Now()
	result, err := r.compiler.CompileWithContext(cmd.Context(), string(data), compiler.CompileOptions{SourcePath: path})
	if err != nil {
		return compiler.Result{}, fmt.Errorf("error compiling %s: %w", source, err)
	}

	for _, w := range result.Warnings {
		r.log.Warning(runID, w)
	}
	r.log.CompileCompleted(runID, len(result.Output), len(result.Slots), len(result.Warnings), time.Since(started))

	return result, nil
}

// encode writes v as JSON or YAML. It reports false for other formats.
func (r *runtime) encode(w io.Writer, v any) (bool, error) {
	switch r.output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}
