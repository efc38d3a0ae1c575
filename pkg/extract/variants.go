package extract

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
)

// extractVariants collects the top-level constant tables declared before the
// component definition. Each is re-emitted as "const <name> = <value>;" with
// type annotations and satisfies clauses removed.
func extractVariants(root *ts.Node, source []byte) (icon.Block, error) {
	var (
		parts      []string
		start, end uint
	)

	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if isComponentDefinition(stmt) {
			break
		}

		for _, decl := range declarators(stmt, source, true) {
			name := decl.ChildByFieldName("name")
			value := unwrapExpression(decl.ChildByFieldName("value"), source)
			if name == nil || value == nil || !isTableValue(value, source) {
				continue
			}

			text := fmt.Sprintf("const %s = %s;", name.Utf8Text(source), value.Utf8Text(source))
			if !icon.Balanced(text) {
				return icon.Block{}, fmt.Errorf("%w: declaration %s", icon.ErrUnbalanced, name.Utf8Text(source))
			}
			parts = append(parts, text)

			if len(parts) == 1 {
				start = stmt.StartByte()
			}
			end = stmt.EndByte()
		}
	}

	return icon.Block{
		Text:  strings.Join(parts, "\n\n"),
		Start: start,
		End:   end,
	}, nil
}

// isComponentDefinition reports whether stmt declares the component: any
// top-level statement that renders JSX.
func isComponentDefinition(stmt *ts.Node) bool {
	switch stmt.Kind() {
	case "lexical_declaration", "variable_declaration", "function_declaration", "export_statement":
		return containsJSX(stmt)
	}
	return false
}

// isTableValue accepts object literals and primitive literal values that a
// variant table may reference. Calls, functions and identifiers are rejected.
func isTableValue(node *ts.Node, source []byte) bool {
	if isAsConst(node, source) {
		node = node.NamedChild(0)
	}
	switch node.Kind() {
	case "object":
		return true
	case "number", "string", "true", "false", "null":
		return true
	case "template_string":
		return !hasSubstitution(node)
	case "unary_expression":
		arg := node.ChildByFieldName("argument")
		return arg != nil && arg.Kind() == "number"
	case "array":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			elem := node.NamedChild(i)
			if elem.Kind() != "comment" && !isTableValue(elem, source) {
				return false
			}
		}
		return true
	}
	return false
}
