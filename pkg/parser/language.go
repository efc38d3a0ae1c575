package parser

import (
	"path/filepath"
	"strings"
)

// Dialect identifies the grammar a component source is parsed with.
type Dialect int

const (
	// DialectTSX is TypeScript with JSX (.tsx files)
	DialectTSX Dialect = iota
	// DialectJSX is JavaScript with JSX (.jsx and .js files)
	DialectJSX
	// DialectUnknown represents an unsupported file
	DialectUnknown
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectTSX:
		return "tsx"
	case DialectJSX:
		return "jsx"
	default:
		return "unknown"
	}
}

// DetectDialect picks the grammar from a file extension.
// Plain .ts files cannot carry markup and are reported as DialectUnknown.
func DetectDialect(filePath string) Dialect {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".tsx":
		return DialectTSX
	case ".jsx", ".js", ".mjs":
		return DialectJSX
	default:
		return DialectUnknown
	}
}

// SupportedDialects returns all dialects the manager can parse.
func SupportedDialects() []Dialect {
	return []Dialect{DialectTSX, DialectJSX}
}
