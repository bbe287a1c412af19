package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	genspec "github.com/mark3labs/samples2sdk/internal/spec"
)

// ImportConfig captures the options for the import command.
type ImportConfig struct {
	Spec    string
	Out     string
	Force   bool
	DryRun  bool
	Verbose bool
}

var importRunner = runImport

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an OpenAPI/Swagger document as API sample files",
		Long: "Import an OpenAPI/Swagger document (local file or http/https URL) and write one " +
			"JSON sample per operation, ready for the generate command.",
		Example: strings.TrimSpace(`  samples2sdk import --spec ./openapi.yaml --out ./Samples
  samples2sdk import --spec https://example.com/openapi.json --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := cmd.Flags().GetString("spec")
			if err != nil {
				return err
			}
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &ImportConfig{
				Spec:    strings.TrimSpace(spec),
				Out:     strings.TrimSpace(out),
				Force:   force,
				DryRun:  dryRun,
				Verbose: verbose,
			}
			if cfg.Spec == "" {
				return newUsageError("import: --spec is required")
			}
			return importRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("spec", "", "Path or URL to the OpenAPI/Swagger document")
	cmd.Flags().String("out", "Samples", "Directory to write the sample files into")
	cmd.Flags().Bool("force", false, "Overwrite existing sample files")
	cmd.Flags().Bool("dry-run", false, "List planned sample files without writing")

	return cmd
}

func runImport(ctx context.Context, cfg *ImportConfig) error {
	log := newLogger(cfg.Verbose)
	defer func() { _ = log.Sync() }()

	doc, err := genspec.Load(ctx, cfg.Spec)
	if err != nil {
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			return newUsageError(msg)
		}
		return err
	}

	extracted := genspec.Extract(doc)
	if len(extracted) == 0 {
		return newUsageError(fmt.Sprintf("import: no operations found in %s", cfg.Spec))
	}

	absOut := cfg.Out
	if ap, err := filepath.Abs(cfg.Out); err == nil {
		absOut = ap
	}

	if cfg.DryRun {
		rels := make([]string, 0, len(extracted))
		for _, e := range extracted {
			rels = append(rels, e.RelPath)
		}
		printPlan(absOut, rels)
		return nil
	}

	written := 0
	skipped := 0
	for _, e := range extracted {
		target := filepath.Join(absOut, filepath.FromSlash(e.RelPath))
		if _, err := os.Stat(target); err == nil && !cfg.Force {
			log.Debugf("skip existing %s", target)
			skipped++
			continue
		}
		data, err := json.MarshalIndent(e.Doc, "", "  ")
		if err != nil {
			return fmt.Errorf("import: marshal %s: %w", e.RelPath, err)
		}
		data = append(data, '\n')
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return newUsageError(fmt.Sprintf("import: cannot create directory for %s: %v", e.RelPath, err))
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return newUsageError(fmt.Sprintf("import: cannot write %s: %v", target, err))
		}
		written++
	}

	fmt.Fprintf(os.Stdout, "Imported %d sample(s) into %s (%d skipped)\n", written, absOut, skipped)
	return nil
}
