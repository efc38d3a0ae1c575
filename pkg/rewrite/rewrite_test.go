package rewrite

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
	"github.com/gnana997/iconport/pkg/parser"
	"github.com/gnana997/iconport/pkg/util"
)

var (
	singleSignals = icon.Signals([]icon.Controller{{Identifier: "controls"}})
	multiSignals  = icon.Signals([]icon.Controller{{Identifier: "cursorControls"}, {Identifier: "rayControls"}})
)

// rewriteSource parses source and rewrites its first svg element.
func rewriteSource(t *testing.T, source string, signals []icon.Signal) *Result {
	t.Helper()

	parsers := parser.NewManager(util.NopLogger(), 1)
	t.Cleanup(func() { parsers.Close() })

	tree, err := parsers.Parse([]byte(source), parser.DialectTSX)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	svg := findSVG(tree.RootNode(), []byte(source))
	require.NotNil(t, svg, "no svg in source")

	result, err := New(DefaultOptions()).Rewrite(svg, []byte(source), signals)
	require.NoError(t, err)
	return result
}

func findSVG(node *ts.Node, source []byte) *ts.Node {
	var tag *ts.Node
	switch node.Kind() {
	case "jsx_element":
		tag = node.Child(0)
	case "jsx_self_closing_element":
		tag = node
	}
	if tag != nil {
		if name := tag.ChildByFieldName("name"); name != nil {
			if text := name.Utf8Text(source); text == "svg" || text == "motion.svg" {
				return node
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := findSVG(node.Child(i), source); found != nil {
			return found
		}
	}
	return nil
}

func TestRewrite_MultiLineElement(t *testing.T) {
	source := `const A = () => (
  <div>
    <svg
      width={size}
      strokeWidth="2"
      strokeLinecap="round"
    >
      <motion.path
        d="M1 1"
        variants={pathVariants}
        initial="normal"
        animate={controls}
      />
    </svg>
  </div>
);
`
	expected := `      <svg
        width={local.size}
        stroke-width="2"
        stroke-linecap="round"
      >
        <Motion.path
          animate={resolveValues(pathVariants, variant())}
          transition={resolveTransition(pathVariants, variant())}
          d="M1 1"
        />
      </svg>`

	result := rewriteSource(t, source, singleSignals)
	assert.Equal(t, expected, result.Text)

	require.Len(t, result.Directives, 1)
	assert.Equal(t, icon.RewriteDirective{
		Controller: "controls",
		Variants:   "pathVariants",
	}, result.Directives[0])
}

func TestRewrite_SingleLineWithCustomAndTransition(t *testing.T) {
	source := `const A = () => <svg><motion.circle cx="12" variants={dot} custom={2} transition={{ delay: 0.1 }} animate={rayControls} /></svg>;`

	result := rewriteSource(t, source, multiSignals)
	assert.Equal(t,
		`      <svg><Motion.circle animate={resolveValues(dot, rayVariant(), 2)} transition={resolveTransition(dot, rayVariant(), 2, { delay: 0.1 })} cx="12" /></svg>`,
		result.Text)

	require.Len(t, result.Directives, 1)
	d := result.Directives[0]
	assert.Equal(t, "rayControls", d.Controller)
	assert.Equal(t, "2", d.Custom)
	assert.Equal(t, "{ delay: 0.1 }", d.Transition)
}

func TestRewrite_TransitionWithoutCustom(t *testing.T) {
	source := `const A = () => <svg><motion.rect variants={box} transition={spring} animate={controls} /></svg>;`

	result := rewriteSource(t, source, singleSignals)
	assert.Contains(t, result.Text, "transition={resolveTransition(box, variant(), undefined, spring)}")
	assert.Contains(t, result.Text, "animate={resolveValues(box, variant())}")
}

// Elements with variants but no controller follow the nearest animated
// ancestor, else the first controller.
func TestRewrite_ControllerInheritance(t *testing.T) {
	source := `const A = () => (
  <svg>
    <motion.g variants={group} animate={rayControls}>
      <motion.path variants={line} custom={0} />
      <motion.path variants={line} custom={1} />
    </motion.g>
    <motion.path variants={cursor} />
  </svg>
);`

	result := rewriteSource(t, source, multiSignals)

	require.Len(t, result.Directives, 4)
	controllers := make([]string, len(result.Directives))
	for i, d := range result.Directives {
		controllers[i] = d.Controller
	}
	assert.Equal(t, []string{"rayControls", "rayControls", "rayControls", "cursorControls"}, controllers)

	assert.Contains(t, result.Text, "<Motion.g animate={resolveValues(group, rayVariant())}")
	assert.Contains(t, result.Text, "</Motion.g>")
	assert.Contains(t, result.Text, "animate={resolveValues(line, rayVariant(), 1)}")
	assert.Contains(t, result.Text, "animate={resolveValues(cursor, cursorVariant())}")
	assert.NotContains(t, result.Text, "motion.")
	assert.NotContains(t, result.Text, "Controls}")
}

func TestRewrite_LiteralAnimateUntouched(t *testing.T) {
	source := `const A = () => <svg><motion.path animate={{ opacity: 1 }} initial={{ opacity: 0 }} /></svg>;`

	result := rewriteSource(t, source, singleSignals)
	assert.Equal(t, `      <svg><Motion.path animate={{ opacity: 1 }} initial={{ opacity: 0 }} /></svg>`, result.Text)
	assert.Empty(t, result.Directives)
}

func TestRewrite_ControllerWithoutVariants(t *testing.T) {
	source := `const A = () => <motion.svg animate={controls} initial="normal" viewBox="0 0 24 24"><motion.path variants={v} /></motion.svg>;`

	result := rewriteSource(t, source, singleSignals)
	assert.Equal(t,
		`      <Motion.svg viewBox="0 0 24 24"><Motion.path animate={resolveValues(v, variant())} transition={resolveTransition(v, variant())} /></Motion.svg>`,
		result.Text)
	require.Len(t, result.Directives, 1)
}

func TestRewrite_InlineVariantsAndStyles(t *testing.T) {
	source := `const A = () => (
  <svg className="icon">
    <motion.path
      style={{ transformOrigin: 'center', transformBox: 'fill-box' }}
      variants={{ normal: { x: 0 }, animate: { x: size } }}
      animate={controls}
      fillRule="evenodd"
      xlinkHref="#a"
    />
  </svg>
);`

	result := rewriteSource(t, source, singleSignals)

	assert.Contains(t, result.Text, `<svg class="icon">`)
	assert.Contains(t, result.Text, `style={{ "transform-origin": 'center', "transform-box": 'fill-box' }}`)
	assert.Contains(t, result.Text, `fill-rule="evenodd"`)
	assert.Contains(t, result.Text, `xlink:href="#a"`)

	require.Len(t, result.Directives, 1)
	d := result.Directives[0]
	assert.True(t, d.Inline)
	assert.Equal(t, "{ normal: { x: 0 }, animate: { x: local.size } }", d.Variants)
	assert.Contains(t, result.Text,
		"\n          animate={resolveValues({ normal: { x: 0 }, animate: { x: local.size } }, variant())}\n")
}

// Names bound inside the markup shadow the props they share a name with.
func TestRewrite_BoundNamesNotRenamed(t *testing.T) {
	source := `const A = () => <svg>{[4, 8].map((size) => <circle r={size} />)}<rect width={size} /></svg>;`

	result := rewriteSource(t, source, singleSignals)
	assert.Equal(t,
		`      <svg>{[4, 8].map((size) => <circle r={size} />)}<rect width={local.size} /></svg>`,
		result.Text)

	source = `const A = () => <svg>{rings.map(({ r }) => { const size = r * 2; return <circle r={size} />; })}<rect height={size} /></svg>;`

	result = rewriteSource(t, source, singleSignals)
	assert.Contains(t, result.Text, "const size = r * 2; return <circle r={size} />;")
	assert.Contains(t, result.Text, "<rect height={local.size} />")
}

// Attributes left on the line of a removed attribute keep their own line.
func TestRewrite_RemovedAttributeKeepsLineBreak(t *testing.T) {
	source := `const A = () => (
  <div>
    <svg>
      <motion.path
        d="M1 1"
        variants={pathVariants} animate={controls} fill="none"
      />
    </svg>
  </div>
);
`
	expected := `      <svg>
        <Motion.path
          animate={resolveValues(pathVariants, variant())}
          transition={resolveTransition(pathVariants, variant())}
          d="M1 1"
          fill="none"
        />
      </svg>`

	result := rewriteSource(t, source, singleSignals)
	assert.Equal(t, expected, result.Text)
}

func TestRemovals(t *testing.T) {
	source := []byte("<p\n  a=\"1\"\n  b={x} c={y} d=\"2\"\n/>")
	at := func(s string) uint { return uint(bytes.Index(source, []byte(s))) }

	// b and c are removed; their spans run from the end of the previous
	// attribute.
	aEnd := at("\n  b=")
	cStart, dStart := at("c="), at("d=")
	got := removals(source, []edit{{start: aEnd, end: cStart - 1}, {start: cStart - 1, end: dStart - 1}})
	require.Len(t, got, 1)
	assert.Equal(t, edit{start: at("b="), end: dStart}, got[0])

	// The last attribute on a line keeps the plain span.
	got = removals(source, []edit{{start: dStart - 1, end: at("\n/>")}})
	require.Len(t, got, 1)
	assert.Equal(t, edit{start: dStart - 1, end: at("\n/>")}, got[0])
}

func TestApplyEdits(t *testing.T) {
	out, err := applyEdits("hello world", 10, []edit{
		{16, 21, "there"},
		{10, 10, ">> "},
		{15, 16, ","},
		{15, 15, "!"},
	})
	require.NoError(t, err)
	assert.Equal(t, ">> hello!,there", out)

	_, err = applyEdits("hello", 0, []edit{{0, 3, "x"}, {2, 4, "y"}})
	assert.Error(t, err)
}

func TestNormalizeIndent(t *testing.T) {
	text := "<svg>\n        <path />\n\n      </svg>"
	assert.Equal(t, "  <svg>\n    <path />\n\n  </svg>", normalizeIndent(text, "      ", "  "))
}
