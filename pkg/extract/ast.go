package extract

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// walk visits node and its descendants in document order. Returning false
// from visit skips the node's children.
func walk(node *ts.Node, visit func(n *ts.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), visit)
	}
}

// findFirst returns the first node in document order accepted by match.
func findFirst(node *ts.Node, match func(n *ts.Node) bool) *ts.Node {
	var found *ts.Node
	walk(node, func(n *ts.Node) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// containsJSX reports whether any descendant is a JSX element.
func containsJSX(node *ts.Node) bool {
	return findFirst(node, func(n *ts.Node) bool {
		switch n.Kind() {
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			return true
		}
		return false
	}) != nil
}

// calleeName returns the callee text of a call_expression ("useAnimation",
// "controls.start").
func calleeName(node *ts.Node, source []byte) string {
	if node == nil || node.Kind() != "call_expression" {
		return ""
	}
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Utf8Text(source)
}

// unwrapExpression strips parentheses, satisfies clauses and type
// assertions other than "as const".
func unwrapExpression(node *ts.Node, source []byte) *ts.Node {
	for node != nil {
		switch node.Kind() {
		case "parenthesized_expression", "satisfies_expression", "non_null_expression":
			node = node.NamedChild(0)
		case "as_expression":
			if isAsConst(node, source) {
				return node
			}
			node = node.NamedChild(0)
		default:
			return node
		}
	}
	return nil
}

func isAsConst(node *ts.Node, source []byte) bool {
	if node.Kind() != "as_expression" {
		return false
	}
	last := node.Child(node.ChildCount() - 1)
	return last != nil && last.Utf8Text(source) == "const"
}

// stringValue returns the contents of a string literal node without quotes.
func stringValue(node *ts.Node, source []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Kind() {
	case "string":
		var b strings.Builder
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child.Kind() == "string_fragment" || child.Kind() == "escape_sequence" {
				b.WriteString(child.Utf8Text(source))
			}
		}
		return b.String(), true
	case "template_string":
		if node.NamedChildCount() > 0 && hasSubstitution(node) {
			return "", false
		}
		text := node.Utf8Text(source)
		return strings.Trim(text, "`"), true
	}
	return "", false
}

func hasSubstitution(node *ts.Node) bool {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if node.NamedChild(i).Kind() == "template_substitution" {
			return true
		}
	}
	return false
}

// declarators returns the variable_declarator children of a top-level
// statement, looking through export statements. constOnly restricts the
// result to const declarations.
func declarators(stmt *ts.Node, source []byte, constOnly bool) []*ts.Node {
	if stmt.Kind() == "export_statement" {
		decl := stmt.ChildByFieldName("declaration")
		if decl == nil {
			return nil
		}
		stmt = decl
	}
	if stmt.Kind() != "lexical_declaration" && stmt.Kind() != "variable_declaration" {
		return nil
	}
	if constOnly {
		kind := stmt.ChildByFieldName("kind")
		if kind == nil {
			kind = stmt.Child(0)
		}
		if kind == nil || kind.Utf8Text(source) != "const" {
			return nil
		}
	}

	var out []*ts.Node
	for i := uint(0); i < stmt.NamedChildCount(); i++ {
		child := stmt.NamedChild(i)
		if child.Kind() == "variable_declarator" {
			out = append(out, child)
		}
	}
	return out
}

// findDeclaration locates the declarator or function declaration named name
// anywhere below node and returns the node holding its body.
func findDeclaration(node *ts.Node, source []byte, name string) *ts.Node {
	found := findFirst(node, func(n *ts.Node) bool {
		switch n.Kind() {
		case "variable_declarator", "function_declaration":
			id := n.ChildByFieldName("name")
			return id != nil && id.Utf8Text(source) == name
		}
		return false
	})
	if found == nil {
		return nil
	}
	if found.Kind() == "variable_declarator" {
		return found.ChildByFieldName("value")
	}
	return found.ChildByFieldName("body")
}

// controllerCall finds the first "<controller>.start('<name>')" or
// "<controller>.set('<name>')" call below node that starts at or after
// minByte, returning the variant name.
func controllerCall(node *ts.Node, source []byte, controller string, minByte uint) (string, bool) {
	var variant string
	found := findFirst(node, func(n *ts.Node) bool {
		if n.Kind() != "call_expression" || n.StartByte() < minByte {
			return false
		}
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Kind() != "member_expression" {
			return false
		}
		obj := fn.ChildByFieldName("object")
		prop := fn.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Utf8Text(source) != controller {
			return false
		}
		if method := prop.Utf8Text(source); method != "start" && method != "set" {
			return false
		}
		args := n.ChildByFieldName("arguments")
		if args == nil || args.NamedChildCount() == 0 {
			return false
		}
		v, ok := stringValue(args.NamedChild(0), source)
		if !ok || v == "" {
			return false
		}
		variant = v
		return true
	})
	return variant, found != nil
}
