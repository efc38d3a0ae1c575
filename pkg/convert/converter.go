// Package convert runs the conversion pipeline over single sources and whole
// directories.
package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnana997/iconport/pkg/codegen"
	"github.com/gnana997/iconport/pkg/extract"
	"github.com/gnana997/iconport/pkg/icon"
	"github.com/gnana997/iconport/pkg/parser"
	"github.com/gnana997/iconport/pkg/rewrite"
	"github.com/gnana997/iconport/pkg/util"
)

// Options configures a Converter.
type Options struct {
	InputDir  string
	OutputDir string
	Include   []string
	Exclude   []string

	// Workers bounds the batch worker pool; 0 picks util.OptimalPoolSize().
	Workers int
	// Strict turns every fallback action into a per-file error.
	Strict bool

	CompatImport string
	DefaultSize  int
}

// DefaultOptions returns options with the default globs and template
// settings. Directories are left empty.
func DefaultOptions() Options {
	return Options{
		Include:      DefaultInclude,
		Exclude:      DefaultExclude,
		CompatImport: codegen.DefaultCompatImport,
		DefaultSize:  codegen.DefaultSize,
	}
}

// Output is the generated component for one source.
type Output struct {
	Icon       *icon.Icon
	Text       []byte
	Directives []icon.RewriteDirective
	Warnings   []string
}

// Result is the outcome of converting one file.
type Result struct {
	Path       string
	OutputPath string
	Output     []byte
	Err        error
	Warnings   []string
	// Unchanged is set when the existing output already matched.
	Unchanged bool
}

// OK reports whether the file converted.
func (r Result) OK() bool {
	return r.Err == nil
}

// Converter owns the parser pools and runs the pipeline. It is safe for
// concurrent use.
type Converter struct {
	opts      Options
	parsers   *parser.Manager
	extractor *extract.Extractor
	rewriter  *rewrite.Rewriter
	assembler *codegen.Assembler
	logger    *slog.Logger
}

// New creates a Converter. Call Close when done.
func New(opts Options, logger *slog.Logger) (*Converter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Include == nil {
		opts.Include = DefaultInclude
	}
	if opts.Exclude == nil {
		opts.Exclude = DefaultExclude
	}
	if err := validatePatterns(opts.Include, opts.Exclude); err != nil {
		return nil, err
	}

	assembler, err := codegen.NewAssembler(codegen.Options{
		CompatImport: opts.CompatImport,
		DefaultSize:  opts.DefaultSize,
	})
	if err != nil {
		return nil, err
	}

	parsers := parser.NewManager(logger, opts.Workers)
	return &Converter{
		opts:      opts,
		parsers:   parsers,
		extractor: extract.New(parsers, logger),
		rewriter:  rewrite.New(rewrite.DefaultOptions()),
		assembler: assembler,
		logger:    logger,
	}, nil
}

// Options returns the converter's options.
func (c *Converter) Options() Options {
	return c.opts
}

// Close releases the parser pools.
func (c *Converter) Close() error {
	return c.parsers.Close()
}

// ConvertSource runs the pipeline on source, named by path. Errors are
// *icon.Error values.
func (c *Converter) ConvertSource(path string, source []byte) (*Output, error) {
	unit := icon.NewSourceUnit(path, source)

	ext, err := c.extractor.Extract(unit)
	if err != nil {
		return nil, err
	}
	defer ext.Close()

	ic := ext.Icon
	if err := ic.Validate(); err != nil {
		return nil, icon.NewError(path, icon.StageValidate, err)
	}

	var warnings []string
	for _, fb := range ic.Complete() {
		c.logger.Warn("fallback action",
			"file", path,
			"controller", fb.Controller,
			"action", fb.Kind.String(),
			"variant", fb.Variant,
			"reason", fb.Reason)
		warnings = append(warnings, fb.String())
	}
	if c.opts.Strict && len(ic.Fallbacks) > 0 {
		return nil, icon.NewError(path, icon.StageValidate,
			fmt.Errorf("%w: %d fallback(s), first: %s", icon.ErrFallback, len(ic.Fallbacks), ic.Fallbacks[0]))
	}

	rewritten, err := c.rewriter.Rewrite(ext.SVG, source, icon.Signals(ic.Controllers))
	if err != nil {
		return nil, icon.NewError(path, icon.StageRewrite, err)
	}
	for _, d := range rewritten.Directives {
		if !ic.HasController(d.Controller) {
			return nil, icon.NewError(path, icon.StageRewrite,
				fmt.Errorf("%w: %s", icon.ErrDanglingController, d.Controller))
		}
	}

	text, err := c.assembler.Assemble(ic, rewritten.Text, ext.Dialect == parser.DialectTSX)
	if err != nil {
		return nil, icon.NewError(path, icon.StageAssemble, err)
	}

	return &Output{
		Icon:       ic,
		Text:       text,
		Directives: rewritten.Directives,
		Warnings:   warnings,
	}, nil
}

// ConvertFile reads path, converts it and writes the result to outputDir
// under the same name. Output identical to the existing file is not
// rewritten. A panic anywhere in the pipeline becomes the file's error.
func (c *Converter) ConvertFile(path, outputDir string) (result Result) {
	result = Result{
		Path:       path,
		OutputPath: filepath.Join(outputDir, filepath.Base(path)),
	}
	defer func() {
		if r := recover(); r != nil {
			result.Err = icon.NewError(path, icon.StagePanic, fmt.Errorf("%v", r))
		}
	}()

	source, err := util.ReadSource(path)
	if err != nil {
		result.Err = icon.NewError(path, icon.StageRead, err)
		return result
	}

	out, err := c.ConvertSource(path, source)
	if err != nil {
		result.Err = err
		return result
	}
	result.Output = out.Text
	result.Warnings = out.Warnings

	unchanged, err := writeOutput(result.OutputPath, out.Text)
	if err != nil {
		result.Err = icon.NewError(path, icon.StageWrite, err)
		return result
	}
	result.Unchanged = unchanged
	return result
}

// writeOutput writes data unless the file already holds it. It reports
// whether the write was skipped.
func writeOutput(path string, data []byte) (bool, error) {
	same, err := util.SameContent(path, data)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if same {
		return true, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return false, nil
}
