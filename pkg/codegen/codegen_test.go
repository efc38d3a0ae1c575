package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/iconport/pkg/icon"
)

const testMarkup = `      <svg width={local.size}>
        <Motion.path animate={resolveValues(pathVariants, variant())} transition={resolveTransition(pathVariants, variant())} />
      </svg>`

func newIcon(controllers ...string) *icon.Icon {
	ic := icon.New(icon.NewSourceUnit("arrow-trending-up.tsx", nil))
	for _, c := range controllers {
		ic.Controllers = append(ic.Controllers, icon.Controller{Identifier: c})
	}
	ic.Variants = icon.Block{Text: "const pathVariants = {\n  normal: { opacity: 1 },\n  animate: { opacity: [0, 1] },\n};"}
	return ic
}

func newAssembler(t *testing.T) *Assembler {
	t.Helper()
	a, err := NewAssembler(Options{})
	require.NoError(t, err)
	return a
}

func TestAssemble_SingleController(t *testing.T) {
	ic := newIcon("controls")
	ic.Start.Add("controls", "animate")
	ic.Stop.Add("controls", "normal")
	ic.HoverEnter.Add("controls", "animate")
	ic.HoverLeave.Add("controls", "normal")

	out, err := newAssembler(t).Assemble(ic, testMarkup, true)
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "import type { JSX } from \"solid-js\";\n"))
	assert.Contains(t, text, `import { resolveTransition, resolveValues } from "../../lib/motion-compat";`)
	assert.Contains(t, text, "export interface ArrowTrendingUpIconHandle {")
	assert.Contains(t, text, "export interface ArrowTrendingUpIconProps\n")
	assert.Contains(t, text, "}\n\nconst pathVariants = {\n  normal: { opacity: 1 },")
	assert.Contains(t, text, "};\n\nconst ArrowTrendingUpIcon = (rawProps: ArrowTrendingUpIconProps) => {\n")
	assert.Contains(t, text, "mergeProps({ size: 28 }, rawProps)")

	assert.Equal(t, 1, strings.Count(text, "createSignal("), "one signal")
	assert.Contains(t, text, `  const [variant, setVariant] = createSignal("normal");`)
	assert.Contains(t, text, "      startAnimation: () => {\n        setVariant(\"animate\");\n      },\n")
	assert.Contains(t, text, "      stopAnimation: () => {\n        setVariant(\"normal\");\n      },\n")
	assert.Contains(t, text, "    } else {\n      setVariant(\"animate\");\n    }\n")
	assert.Contains(t, text, "    } else {\n      setVariant(\"normal\");\n    }\n")

	assert.Contains(t, text, "      {...others}\n    >\n"+testMarkup+"\n    </div>\n")
	assert.True(t, strings.HasSuffix(text, "export { ArrowTrendingUpIcon };\n"))
}

func TestAssemble_MultiController(t *testing.T) {
	ic := newIcon("cursorControls", "rayControls")
	ic.Start.Add("cursorControls", "animate")
	ic.Start.Add("rayControls", "burst")
	ic.Stop.Add("rayControls", "hidden")

	out, err := newAssembler(t).Assemble(ic, testMarkup, true)
	require.NoError(t, err)
	text := string(out)

	assert.Equal(t, 2, strings.Count(text, "createSignal("))
	assert.Contains(t, text, `const [cursorVariant, setCursorVariant] = createSignal("normal");`)
	assert.Contains(t, text, `const [rayVariant, setRayVariant] = createSignal("hidden");`)

	// Both controllers change in the same start and stop callbacks.
	assert.Contains(t, text,
		"startAnimation: () => {\n        setCursorVariant(\"animate\");\n        setRayVariant(\"burst\");\n      },")
	assert.Contains(t, text,
		"stopAnimation: () => {\n        setCursorVariant(\"normal\");\n        setRayVariant(\"hidden\");\n      },")

	// Missing hover actions render as defaults.
	assert.Contains(t, text, "      setCursorVariant(\"animate\");\n      setRayVariant(\"animate\");\n    }")
	assert.Contains(t, text, "      setCursorVariant(\"normal\");\n      setRayVariant(\"normal\");\n    }")
}

func TestAssemble_JavaScript(t *testing.T) {
	ic := newIcon("controls")
	ic.Unit = icon.NewSourceUnit("bell.jsx", nil)
	ic.Variants = icon.Block{}

	a, err := NewAssembler(Options{CompatImport: "@/motion-compat", DefaultSize: 24})
	require.NoError(t, err)

	out, err := a.Assemble(ic, testMarkup, false)
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "import { createSignal, mergeProps, splitProps } from \"solid-js\";\n"))
	assert.NotContains(t, text, "interface")
	assert.NotContains(t, text, "JSX.")
	assert.Contains(t, text, " * @typedef {object} BellIconHandle\n")
	assert.Contains(t, text, ` from "@/motion-compat";`)
	assert.Contains(t, text, " */\n\nconst BellIcon = (rawProps) => {\n")
	assert.Contains(t, text, "mergeProps({ size: 24 }, rawProps)")
	assert.Contains(t, text, "const handleMouseEnter = (e) => {")
}

func TestAssemble_NoMarkup(t *testing.T) {
	_, err := newAssembler(t).Assemble(newIcon("controls"), "", true)
	assert.ErrorIs(t, err, icon.ErrNoMarkup)
}
