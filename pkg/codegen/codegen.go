// Package codegen assembles the generated SolidJS component from the icon
// representation and the rewritten markup.
package codegen

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/gnana997/iconport/pkg/icon"
)

const (
	// DefaultCompatImport is the module exporting resolveValues and
	// resolveTransition.
	DefaultCompatImport = "../../lib/motion-compat"
	DefaultSize         = 28
)

// Options configures the generated skeleton.
type Options struct {
	CompatImport string
	DefaultSize  int
}

// Assembler renders components. It is safe for concurrent use.
type Assembler struct {
	tmpl *template.Template
	opts Options
}

// NewAssembler parses the component template.
func NewAssembler(opts Options) (*Assembler, error) {
	if opts.CompatImport == "" {
		opts.CompatImport = DefaultCompatImport
	}
	if opts.DefaultSize <= 0 {
		opts.DefaultSize = DefaultSize
	}

	tmpl, err := template.New("component").
		Funcs(template.FuncMap{"quote": strconv.Quote}).
		Parse(componentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse component template: %w", err)
	}
	return &Assembler{tmpl: tmpl, opts: opts}, nil
}

type signalData struct {
	Getter  string
	Setter  string
	Initial string
}

type assignment struct {
	Setter  string
	Variant string
}

type templateData struct {
	Name         string
	TypeScript   bool
	CompatImport string
	DefaultSize  int
	Variants     string
	Signals      []signalData
	Start        []assignment
	Stop         []assignment
	HoverEnter   []assignment
	HoverLeave   []assignment
	Markup       string
}

// Assemble renders the component for ic. markup is the rewritten svg,
// already indented. typescript selects annotated output for .tsx files.
// Every action is resolved through ActionSet.Resolve, so missing entries
// render as the kind's default.
func (a *Assembler) Assemble(ic *icon.Icon, markup string, typescript bool) ([]byte, error) {
	if markup == "" {
		return nil, icon.ErrNoMarkup
	}

	signals := icon.Signals(ic.Controllers)
	data := templateData{
		Name:         ic.Unit.ComponentName,
		TypeScript:   typescript,
		CompatImport: a.opts.CompatImport,
		DefaultSize:  a.opts.DefaultSize,
		Variants:     ic.Variants.Text,
		Markup:       markup,
	}

	for _, s := range signals {
		data.Signals = append(data.Signals, signalData{
			Getter:  s.Getter,
			Setter:  s.Setter,
			Initial: ic.Stop.Resolve(s.Controller),
		})
		data.Start = append(data.Start, assignment{s.Setter, ic.Start.Resolve(s.Controller)})
		data.Stop = append(data.Stop, assignment{s.Setter, ic.Stop.Resolve(s.Controller)})
		data.HoverEnter = append(data.HoverEnter, assignment{s.Setter, ic.HoverEnter.Resolve(s.Controller)})
		data.HoverLeave = append(data.HoverLeave, assignment{s.Setter, ic.HoverLeave.Resolve(s.Controller)})
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute component template: %w", err)
	}
	return buf.Bytes(), nil
}
