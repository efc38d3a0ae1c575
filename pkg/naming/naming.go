// Package naming maps icon file stems to component identifiers.
package naming

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Suffix is appended to every component name.
const Suffix = "Icon"

// irregular holds tokens whose PascalCase form is not a plain capitalization.
var irregular = map[string]string{
	"3d":  "3D",
	"2x2": "2X2",
}

// ComponentName converts a kebab-case stem ("arrow-trending-up") into the
// component identifier ("ArrowTrendingUpIcon"). Any input is accepted;
// empty tokens from doubled dashes are dropped.
func ComponentName(stem string) string {
	var b strings.Builder
	for _, token := range strings.Split(stem, "-") {
		b.WriteString(pascalToken(token))
	}
	b.WriteString(Suffix)
	return b.String()
}

// Stem returns the file name without directory and extension.
func Stem(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func pascalToken(token string) string {
	if token == "" {
		return ""
	}
	if form, ok := irregular[token]; ok {
		return form
	}
	r, size := utf8.DecodeRuneInString(token)
	return string(unicode.ToUpper(r)) + token[size:]
}
