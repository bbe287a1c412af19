// Package batch drives the sample-to-documentation pipeline: discovery,
// planning, parallel rendering, and output writes.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mark3labs/samples2sdk/internal/corpus"
	"github.com/mark3labs/samples2sdk/internal/emitter/pyemitter"
	"github.com/mark3labs/samples2sdk/internal/sample"
)

// Options configures one batch run.
type Options struct {
	SamplesDir   string
	ReferenceDir string // optional; empty means no reference corpus
	OutDir       string
	Ext          string // sample file extension; defaults to ".json"
	Workers      int    // pool size; defaults to GOMAXPROCS
	MaxFiles     int    // cap on processed samples; 0 means unlimited
	DryRun       bool
	Progress     bool // render a progress bar over completed tasks
	Logger       *zap.SugaredLogger
}

// task is one planned unit of work: a winning input and its output path.
type task struct {
	input  string
	output string
	rel    string // output path relative to OutDir, for reporting
}

// FileResult records the outcome for one rendered sample.
type FileResult struct {
	Input  string
	Output string
	Err    error
}

// Summary aggregates one run. Per-file failures live in Results; they never
// fail the run itself.
type Summary struct {
	Generated int
	Failed    int
	Skipped   int // inputs dropped because another input claimed the same output
	Results   []FileResult
	Planned   []string // relative output paths; populated in dry-run
}

// Run executes the pipeline. It returns an error only for setup problems
// (unreadable samples root, bad options); individual sample failures are
// logged, recorded in the summary, and do not stop sibling tasks.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	_ = ctx // tasks run to completion; the pipeline has no cancellation points
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if strings.TrimSpace(opts.SamplesDir) == "" {
		return nil, fmt.Errorf("batch: samples directory is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("batch: output directory is required")
	}
	ext := opts.Ext
	if ext == "" {
		ext = ".json"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	inputs, err := discover(opts.SamplesDir, ext)
	if err != nil {
		return nil, err
	}
	if opts.MaxFiles > 0 && len(inputs) > opts.MaxFiles {
		inputs = inputs[:opts.MaxFiles]
	}
	log.Debugf("discovered %d sample files under %s", len(inputs), opts.SamplesDir)

	tasks, skipped := plan(opts.SamplesDir, opts.OutDir, inputs, log)

	summary := &Summary{Skipped: skipped}
	if opts.DryRun {
		for _, t := range tasks {
			summary.Planned = append(summary.Planned, t.rel)
		}
		sort.Strings(summary.Planned)
		return summary, nil
	}

	// The reference corpus is loaded once and shared read-only by every task.
	var reference string
	if opts.ReferenceDir != "" {
		content, cerr := corpus.Load(opts.ReferenceDir)
		for _, e := range multierr.Errors(cerr) {
			log.Warnf("reference corpus: %v", e)
		}
		reference = content
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(len(tasks)), "generating")
	}

	results := make([]FileResult, len(tasks))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			results[i] = process(t, reference)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait() // tasks report failures through results, never the group

	summary.Results = results
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			log.Errorf("process %s: %v", r.Input, r.Err)
			continue
		}
		summary.Generated++
		log.Debugf("generated %s", r.Output)
	}
	return summary, nil
}

// discover walks root for files with the given extension and returns them
// sorted, so planning and collision resolution are stable across runs.
func discover(root, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover samples in %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// plan maps every input to its mirrored output path and resolves filename
// collisions up front: when several inputs clean to the same output, only the
// lexicographically last one is rendered. That keeps the original
// last-writer-wins result while making reruns byte-identical.
func plan(samplesDir, outDir string, inputs []string, log *zap.SugaredLogger) ([]task, int) {
	byOutput := make(map[string]task, len(inputs))
	order := make([]string, 0, len(inputs))
	skipped := 0

	for _, input := range inputs {
		rel, err := filepath.Rel(samplesDir, input)
		if err != nil {
			rel = filepath.Base(input)
		}
		stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		relOut := filepath.Join(filepath.Dir(rel), sample.CleanName(stem)+".md")
		output := filepath.Join(outDir, relOut)

		if prev, ok := byOutput[output]; ok {
			log.Warnf("output collision: %s and %s both map to %s; keeping the latter", prev.input, input, output)
			skipped++
		} else {
			order = append(order, output)
		}
		// inputs are sorted, so the last writer for an output is the
		// lexicographically greatest input
		byOutput[output] = task{input: input, output: output, rel: filepath.ToSlash(relOut)}
	}

	tasks := make([]task, 0, len(order))
	for _, output := range order {
		tasks = append(tasks, byOutput[output])
	}
	return tasks, skipped
}

// process renders one sample and writes its page. Parse failures inside the
// renderer still produce a page (with a commented error line); only I/O
// failures count as task errors.
func process(t task, reference string) FileResult {
	res := FileResult{Input: t.input, Output: t.output}

	data, err := os.ReadFile(t.input)
	if err != nil {
		res.Err = fmt.Errorf("read sample: %w", err)
		return res
	}

	page := pyemitter.RenderPage(data, pyemitter.Options{Reference: reference})
	if err := writeFileAtomic(t.output, []byte(page)); err != nil {
		res.Err = err
		return res
	}
	return res
}

// writeFileAtomic writes content via a temp file in the target directory plus
// rename, creating intermediate directories as needed.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-samples2sdk-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("place %s: %w", path, err)
	}
	success = true
	return nil
}
