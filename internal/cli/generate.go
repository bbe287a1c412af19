package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/samples2sdk/internal/batch"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Samples    string
	Reference  string
	Out        string
	Ext        string
	Workers    int
	MaxFiles   int
	ConfigPath string
	DryRun     bool
	Verbose    bool
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Out: filepath.Join("SDK", "python_v4"),
		Ext: ".json",
	}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate documentation pages from a tree of API sample files",
		Long: "Generate one Markdown documentation page per API sample file, mirroring the " +
			"input tree under the output directory. Options can be provided via flags, " +
			"config files, or defaults.",
		Example: strings.TrimSpace(`  samples2sdk generate --samples ./Samples --reference ./reference/python --out ./SDK/python_v4
  samples2sdk --config samples2sdk.yaml generate --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("samples", "", "Directory tree of JSON API sample files")
	flags.String("reference", "", "Directory of reference documentation to concatenate as generation context")
	flags.String("out", "", "Output directory for generated pages (defaults to SDK/python_v4)")
	flags.String("ext", "", "Sample file extension to discover (defaults to .json)")
	flags.Int("workers", 0, "Worker pool size; defaults to the number of CPUs")
	flags.Int("max-files", 0, "Process at most this many samples (0 = unlimited)")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("samples") {
		value, err := flags.GetString("samples")
		if err != nil {
			return err
		}
		cfg.Samples = strings.TrimSpace(value)
	}
	if flags.Changed("reference") {
		value, err := flags.GetString("reference")
		if err != nil {
			return err
		}
		cfg.Reference = strings.TrimSpace(value)
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("ext") {
		value, err := flags.GetString("ext")
		if err != nil {
			return err
		}
		cfg.Ext = strings.TrimSpace(value)
	}
	if flags.Changed("workers") {
		value, err := flags.GetInt("workers")
		if err != nil {
			return err
		}
		cfg.Workers = value
	}
	if flags.Changed("max-files") {
		value, err := flags.GetInt("max-files")
		if err != nil {
			return err
		}
		cfg.MaxFiles = value
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Samples = strings.TrimSpace(c.Samples)
	c.Reference = strings.TrimSpace(c.Reference)
	c.Out = strings.TrimSpace(c.Out)
	c.Ext = strings.TrimSpace(c.Ext)
	if c.Ext != "" && !strings.HasPrefix(c.Ext, ".") {
		c.Ext = "." + c.Ext
	}
}

func (c *GenerateConfig) validate() error {
	if c.Samples == "" {
		return newUsageError("generate: --samples is required (set via flag or config file)")
	}
	if c.Out == "" {
		return newUsageError("generate: --out must not be empty")
	}
	if c.Workers < 0 {
		return newUsageError(fmt.Sprintf("generate: --workers must be >= 0, got %d", c.Workers))
	}
	if c.MaxFiles < 0 {
		return newUsageError(fmt.Sprintf("generate: --max-files must be >= 0, got %d", c.MaxFiles))
	}
	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	log := newLogger(cfg.Verbose)
	defer func() { _ = log.Sync() }()

	sum, err := batch.Run(ctx, batch.Options{
		SamplesDir:   cfg.Samples,
		ReferenceDir: cfg.Reference,
		OutDir:       cfg.Out,
		Ext:          cfg.Ext,
		Workers:      cfg.Workers,
		MaxFiles:     cfg.MaxFiles,
		DryRun:       cfg.DryRun,
		Progress:     !cfg.DryRun && !cfg.Verbose,
		Logger:       log,
	})
	if err != nil {
		return newUsageError(fmt.Sprintf("generate: %v", err))
	}

	absOut := cfg.Out
	if ap, err := filepath.Abs(cfg.Out); err == nil {
		absOut = ap
	}

	if cfg.DryRun {
		printPlan(absOut, sum.Planned)
		if sum.Skipped > 0 {
			fmt.Fprintf(os.Stdout, "%d input(s) skipped due to output collisions\n", sum.Skipped)
		}
		return nil
	}

	// Per-file failures are reported, not fatal: the batch always attempts
	// every discovered input.
	fmt.Fprintf(os.Stdout, "Generated %d page(s) under %s (%d failed, %d skipped)\n",
		sum.Generated, absOut, sum.Failed, sum.Skipped)
	return nil
}

func printPlan(outDir string, relPaths []string) {
	fmt.Fprintf(os.Stdout, "Planned writes to %s (%d files):\n", outDir, len(relPaths))
	for _, p := range relPaths {
		fmt.Fprintf(os.Stdout, "- %s\n", p)
	}
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		normalized := normalizeKey(key)
		switch normalized {
		case "samples":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Samples = str
		case "reference":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Reference = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "ext":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Ext = str
		case "workers":
			n, err := valueAsInt(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Workers = n
		case "maxfiles":
			n, err := valueAsInt(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.MaxFiles = n
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.DryRun = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value %q", val)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
