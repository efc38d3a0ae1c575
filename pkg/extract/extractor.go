// Package extract reads an icon component source into the icon
// representation: controllers, variant tables, the svg markup and the four
// action sets.
package extract

import (
	"fmt"
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
	"github.com/gnana997/iconport/pkg/parser"
)

// Extractor turns sources into icon representations. It is safe for
// concurrent use; the parser manager serializes access to each parser.
type Extractor struct {
	parsers *parser.Manager
	logger  *slog.Logger
}

// New creates an Extractor backed by parsers.
func New(parsers *parser.Manager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{parsers: parsers, logger: logger}
}

// Extraction is the result of extracting one source. The tree stays open so
// the rewriter can walk the svg subtree; call Close when done.
type Extraction struct {
	Icon    *icon.Icon
	Dialect parser.Dialect
	Tree    *ts.Tree
	SVG     *ts.Node
}

// Close releases the syntax tree.
func (e *Extraction) Close() {
	if e != nil && e.Tree != nil {
		e.Tree.Close()
		e.Tree = nil
	}
}

// Extract parses unit and extracts its representation. Errors are
// *icon.Error values carrying the parse or extract stage. Actions are not
// completed; callers decide how fallbacks are treated.
func (x *Extractor) Extract(unit icon.SourceUnit) (*Extraction, error) {
	tree, dialect, err := x.parsers.ParseFile(unit.Source, unit.Path)
	if err != nil {
		return nil, icon.NewError(unit.Path, icon.StageParse, err)
	}

	ext := &Extraction{
		Icon:    icon.New(unit),
		Dialect: dialect,
		Tree:    tree,
	}
	root := tree.RootNode()
	if root.HasError() {
		x.logger.Warn("source has syntax errors", "file", unit.Path)
	}

	fail := func(err error) (*Extraction, error) {
		ext.Close()
		return nil, icon.NewError(unit.Path, icon.StageExtract, err)
	}

	controllers, err := x.detectControllers(dialect, root, unit.Source)
	if err != nil {
		return fail(fmt.Errorf("detect controllers: %w", err))
	}
	ext.Icon.Controllers = controllers

	variants, err := extractVariants(root, unit.Source)
	if err != nil {
		return fail(fmt.Errorf("extract variants: %w", err))
	}
	ext.Icon.Variants = variants

	svg, err := findSVGRoot(root, unit.Source)
	if err != nil {
		return fail(err)
	}
	ext.SVG = svg
	ext.Icon.Markup = blockOf(svg, unit.Source)

	extractHandle(root, unit.Source, controllers, ext.Icon.Start, ext.Icon.Stop)
	extractHover(root, unit.Source, controllers, ext.Icon.HoverEnter, ext.Icon.HoverLeave)

	x.logger.Debug("extracted icon",
		"file", unit.Path,
		"component", unit.ComponentName,
		"controllers", len(controllers),
		"variant_bytes", len(variants.Text),
		"markup_bytes", len(ext.Icon.Markup.Text))

	return ext, nil
}
