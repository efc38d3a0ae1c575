// Package rewrite converts the extracted svg markup from Motion for React
// bindings to solid-motionone bindings driven by per-controller signals.
package rewrite

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
)

// DefaultIndent is applied to every markup line after normalization.
const DefaultIndent = "      "

// Options tunes the rewriter.
type Options struct {
	// Indent replaces the markup's own leading whitespace.
	Indent string
	// PropRefs maps bare identifiers in the markup to their replacement.
	PropRefs map[string]string
}

// DefaultOptions returns the options used by the converter.
func DefaultOptions() Options {
	return Options{
		Indent:   DefaultIndent,
		PropRefs: defaultPropRefs,
	}
}

// Result is the rewritten markup and one directive per rebound element.
type Result struct {
	Text       string
	Directives []icon.RewriteDirective
}

// Rewriter rewrites svg subtrees. The zero value is not usable; use New.
type Rewriter struct {
	opts Options
}

// New creates a Rewriter.
func New(opts Options) *Rewriter {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	if opts.PropRefs == nil {
		opts.PropRefs = defaultPropRefs
	}
	return &Rewriter{opts: opts}
}

// Rewrite rewrites the element at svg. signals must hold one entry per
// controller, in controller order.
func (rw *Rewriter) Rewrite(svg *ts.Node, source []byte, signals []icon.Signal) (*Result, error) {
	if svg == nil {
		return nil, fmt.Errorf("nil svg node")
	}
	if len(signals) == 0 {
		return nil, fmt.Errorf("no signals")
	}

	w := &walker{
		source:   source,
		signals:  signals,
		propRefs: rw.opts.PropRefs,
	}
	w.visit(svg, "")

	text, err := applyEdits(string(source[svg.StartByte():svg.EndByte()]), svg.StartByte(), w.edits)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:       normalizeIndent(text, linePrefix(source, svg.StartByte()), rw.opts.Indent),
		Directives: w.directives,
	}, nil
}

type walker struct {
	source     []byte
	signals    []icon.Signal
	propRefs   map[string]string
	edits      []edit
	directives []icon.RewriteDirective

	// bound counts the enclosing function parameters and block declarations
	// per name; bound names shadow prop references.
	bound map[string]int
}

// visit rewrites node. inherited is the controller of the nearest animated
// ancestor, "" at the root.
func (w *walker) visit(node *ts.Node, inherited string) {
	switch node.Kind() {
	case "jsx_element":
		count := node.ChildCount()
		controller := inherited
		for i := uint(0); i < count; i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "jsx_opening_element":
				controller = w.element(child, inherited)
			case "jsx_closing_element":
				w.renameTag(child)
			default:
				w.visit(child, controller)
			}
		}
		return
	case "jsx_self_closing_element":
		w.element(node, inherited)
		return
	case "identifier":
		name := node.Utf8Text(w.source)
		if repl, ok := w.propRefs[name]; ok && w.bound[name] == 0 {
			w.edits = append(w.edits, edit{node.StartByte(), node.EndByte(), repl})
		}
		return
	case "arrow_function", "function_expression", "function":
		names := w.parameterNames(node)
		w.bind(names, 1)
		if body := node.ChildByFieldName("body"); body != nil {
			w.visit(body, inherited)
		}
		w.bind(names, -1)
		return
	case "statement_block":
		names := w.blockDeclarations(node)
		w.bind(names, 1)
		for i := uint(0); i < node.ChildCount(); i++ {
			w.visit(node.Child(i), inherited)
		}
		w.bind(names, -1)
		return
	case "variable_declarator":
		if value := node.ChildByFieldName("value"); value != nil {
			w.visit(value, inherited)
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		w.visit(node.Child(i), inherited)
	}
}

func (w *walker) bind(names []string, delta int) {
	if len(names) == 0 {
		return
	}
	if w.bound == nil {
		w.bound = make(map[string]int)
	}
	for _, n := range names {
		w.bound[n] += delta
	}
}

// parameterNames returns every identifier in a function's parameter list,
// destructuring patterns included.
func (w *walker) parameterNames(fn *ts.Node) []string {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		params = fn.ChildByFieldName("parameter")
	}
	return identifiersIn(params, w.source)
}

// blockDeclarations returns the names declared directly in a block.
func (w *walker) blockDeclarations(block *ts.Node) []string {
	var names []string
	for i := uint(0); i < block.NamedChildCount(); i++ {
		stmt := block.NamedChild(i)
		switch stmt.Kind() {
		case "lexical_declaration", "variable_declaration":
			for j := uint(0); j < stmt.NamedChildCount(); j++ {
				decl := stmt.NamedChild(j)
				if decl.Kind() == "variable_declarator" {
					names = append(names, identifiersIn(decl.ChildByFieldName("name"), w.source)...)
				}
			}
		case "function_declaration":
			if name := stmt.ChildByFieldName("name"); name != nil {
				names = append(names, name.Utf8Text(w.source))
			}
		}
	}
	return names
}

func identifiersIn(node *ts.Node, source []byte) []string {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{node.Utf8Text(source)}
	}
	var names []string
	for i := uint(0); i < node.NamedChildCount(); i++ {
		names = append(names, identifiersIn(node.NamedChild(i), source)...)
	}
	return names
}

// attribute is one jsx_attribute of a tag with its preceding sibling.
type attribute struct {
	node  *ts.Node
	prev  *ts.Node
	name  *ts.Node
	value *ts.Node
}

func (a attribute) expression() *ts.Node {
	if a.value == nil || a.value.Kind() != "jsx_expression" {
		return nil
	}
	return a.value.NamedChild(0)
}

// element rewrites one opening or self-closing tag and returns the
// controller its children inherit.
func (w *walker) element(tag *ts.Node, inherited string) string {
	name := w.renameTag(tag)
	if name == nil {
		return inherited
	}

	var attrs []attribute
	byName := make(map[string]attribute)
	for i := uint(0); i < tag.ChildCount(); i++ {
		child := tag.Child(i)
		if child.Kind() != "jsx_attribute" || i == 0 {
			continue
		}
		a := attribute{node: child, prev: tag.Child(i - 1), name: child.Child(0)}
		if child.NamedChildCount() > 1 {
			a.value = child.NamedChild(child.NamedChildCount() - 1)
		}
		attrs = append(attrs, a)
		byName[a.name.Utf8Text(w.source)] = a
	}

	controller := inherited
	removed := make(map[string]bool)
	if strings.HasPrefix(name.Utf8Text(w.source), "motion.") {
		controller, removed = w.rebind(tag, name, attrs, byName, inherited)
	}

	for _, a := range attrs {
		attrName := a.name.Utf8Text(w.source)
		if removed[attrName] {
			continue
		}
		if repl, ok := attributeRenames[attrName]; ok {
			w.edits = append(w.edits, edit{a.name.StartByte(), a.name.EndByte(), repl})
		}
		if attrName == "style" {
			w.renameStyleKeys(a.expression())
		}
		if a.value != nil {
			w.visit(a.value, controller)
		}
	}
	return controller
}

// renameTag turns motion.X into Motion.X and returns the tag's name node.
func (w *walker) renameTag(tag *ts.Node) *ts.Node {
	name := tag.ChildByFieldName("name")
	if name == nil {
		return nil
	}
	if strings.HasPrefix(name.Utf8Text(w.source), "motion.") {
		w.edits = append(w.edits, edit{name.StartByte(), name.StartByte() + uint(len("motion")), "Motion"})
	}
	return name
}

// rebind replaces the controller bindings of a motion element. It returns
// the element's controller and the set of attributes it removed.
func (w *walker) rebind(tag, name *ts.Node, attrs []attribute, byName map[string]attribute, inherited string) (string, map[string]bool) {
	removed := make(map[string]bool)

	bound := ""
	if animate, ok := byName["animate"]; ok {
		expr := animate.expression()
		if expr == nil || expr.Kind() != "identifier" {
			// A literal target is understood by solid-motionone as is.
			return inherited, removed
		}
		if _, ok := icon.SignalFor(w.signals, expr.Utf8Text(w.source)); !ok {
			return inherited, removed
		}
		bound = expr.Utf8Text(w.source)
	}

	variants, hasVariants := byName["variants"]
	if bound == "" && !hasVariants {
		return inherited, removed
	}

	controller := bound
	if controller == "" {
		controller = inherited
	}
	if controller == "" {
		controller = w.signals[0].Controller
	}
	signal, _ := icon.SignalFor(w.signals, controller)

	drop := []string{"animate", "initial"}
	if hasVariants {
		drop = animationProps
	}
	var spans []edit
	for _, a := range attrs {
		attrName := a.name.Utf8Text(w.source)
		for _, d := range drop {
			if attrName == d {
				removed[attrName] = true
				spans = append(spans, edit{start: a.prev.EndByte(), end: a.node.EndByte()})
			}
		}
	}
	w.edits = append(w.edits, removals(w.source, spans)...)
	if !hasVariants {
		return controller, removed
	}

	directive := icon.RewriteDirective{Controller: controller}
	if expr := variants.expression(); expr != nil {
		directive.Variants = w.text(expr)
		directive.Inline = expr.Kind() == "object"
	} else if variants.value != nil {
		directive.Variants = variants.value.Utf8Text(w.source)
	}
	if custom, ok := byName["custom"]; ok {
		directive.Custom = w.valueText(custom)
	}
	if transition, ok := byName["transition"]; ok {
		directive.Transition = w.valueText(transition)
	}
	w.directives = append(w.directives, directive)

	w.edits = append(w.edits, edit{name.EndByte(), name.EndByte(), w.bindings(tag, name, directive, signal)})
	return controller, removed
}

// bindings renders the inserted animate and transition attributes.
func (w *walker) bindings(tag, name *ts.Node, d icon.RewriteDirective, signal icon.Signal) string {
	state := signal.Getter + "()"

	valueArgs := []string{d.Variants, state}
	transitionArgs := []string{d.Variants, state}
	if d.Custom != "" {
		valueArgs = append(valueArgs, d.Custom)
		transitionArgs = append(transitionArgs, d.Custom)
	}
	if d.Transition != "" {
		if d.Custom == "" {
			transitionArgs = append(transitionArgs, "undefined")
		}
		transitionArgs = append(transitionArgs, d.Transition)
	}

	animate := "animate={resolveValues(" + strings.Join(valueArgs, ", ") + ")}"
	transition := "transition={resolveTransition(" + strings.Join(transitionArgs, ", ") + ")}"

	// Attributes laid out one per line get the new ones on their own lines.
	if first := firstAttribute(tag); first != nil && first.StartPosition().Row > name.EndPosition().Row {
		indent := lineIndent(w.source, first.StartByte())
		return "\n" + indent + animate + "\n" + indent + transition
	}
	return " " + animate + " " + transition
}

// valueText returns an attribute value as an expression: the inner
// expression of {...}, or the literal itself.
func (w *walker) valueText(a attribute) string {
	if expr := a.expression(); expr != nil {
		return w.text(expr)
	}
	if a.value != nil {
		return a.value.Utf8Text(w.source)
	}
	return ""
}

// text returns the source of node with prop references rewritten.
func (w *walker) text(node *ts.Node) string {
	inner := &walker{source: w.source, signals: w.signals, propRefs: w.propRefs, bound: w.bound}
	inner.visit(node, "")

	out, err := applyEdits(node.Utf8Text(w.source), node.StartByte(), inner.edits)
	if err != nil {
		return node.Utf8Text(w.source)
	}
	return out
}

// renameStyleKeys quotes the kebab-case form of known style keys in a
// style={{...}} object.
func (w *walker) renameStyleKeys(expr *ts.Node) {
	if expr == nil || expr.Kind() != "object" {
		return
	}
	for i := uint(0); i < expr.NamedChildCount(); i++ {
		pair := expr.NamedChild(i)
		if pair.Kind() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		if key == nil || key.Kind() != "property_identifier" {
			continue
		}
		if repl, ok := styleKeyRenames[key.Utf8Text(w.source)]; ok {
			w.edits = append(w.edits, edit{key.StartByte(), key.EndByte(), repl})
		}
	}
}

func firstAttribute(tag *ts.Node) *ts.Node {
	for i := uint(0); i < tag.NamedChildCount(); i++ {
		child := tag.NamedChild(i)
		if child.Kind() == "jsx_attribute" || child.Kind() == "jsx_expression" {
			return child
		}
	}
	return nil
}
