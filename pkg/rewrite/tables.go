package rewrite

// attributeRenames maps React prop names to their Solid spelling.
var attributeRenames = map[string]string{
	"className":        "class",
	"xlinkHref":        "xlink:href",
	"strokeLinecap":    "stroke-linecap",
	"strokeLinejoin":   "stroke-linejoin",
	"strokeWidth":      "stroke-width",
	"strokeDasharray":  "stroke-dasharray",
	"strokeDashoffset": "stroke-dashoffset",
	"strokeMiterlimit": "stroke-miterlimit",
	"strokeOpacity":    "stroke-opacity",
	"fillRule":         "fill-rule",
	"fillOpacity":      "fill-opacity",
	"clipRule":         "clip-rule",
	"clipPath":         "clip-path",
	"stopColor":        "stop-color",
	"stopOpacity":      "stop-opacity",
}

// styleKeyRenames maps camelCase style keys to quoted CSS property names.
var styleKeyRenames = map[string]string{
	"transformOrigin": `"transform-origin"`,
	"transformBox":    `"transform-box"`,
}

// defaultPropRefs rewrites destructured props to the split local object.
var defaultPropRefs = map[string]string{
	"size": "local.size",
}

// animationProps are removed from rebound motion elements.
var animationProps = []string{"animate", "variants", "custom", "transition", "initial"}
