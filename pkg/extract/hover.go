package extract

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
)

const (
	enterHandler = "handleMouseEnter"
	leaveHandler = "handleMouseLeave"
)

// extractHover resolves the uncontrolled hover actions. Missing handlers or
// calls contribute nothing; Icon.Complete supplies the defaults.
func extractHover(root *ts.Node, source []byte, controllers []icon.Controller, enter, leave *icon.ActionSet) {
	handlers := []struct {
		name string
		set  *icon.ActionSet
	}{
		{enterHandler, enter},
		{leaveHandler, leave},
	}
	for _, h := range handlers {
		body := findDeclaration(root, source, h.name)
		if body == nil {
			h.set.Reason = "no " + h.name + " handler"
			continue
		}

		section, minByte := uncontrolledBranch(body, source)
		if section == nil {
			h.set.Reason = "no uncontrolled branch in " + h.name
			continue
		}
		for _, c := range controllers {
			if variant, ok := controllerCall(section, source, c.Identifier, minByte); ok {
				h.set.Add(c.Identifier, variant)
			}
		}
	}
}

// uncontrolledBranch picks the part of a handler that runs without an
// external ref. For "if (isControlled) {...} else {...}" it is the else
// branch; a negated condition selects the consequence instead. A handler
// without a conditional is uncontrolled as a whole. When the selected branch
// is absent, the statements after the if statement are used, which minByte
// marks.
func uncontrolledBranch(body *ts.Node, source []byte) (*ts.Node, uint) {
	stmt := findFirst(body, func(n *ts.Node) bool {
		return n.Kind() == "if_statement"
	})
	if stmt == nil {
		return body, 0
	}

	condition := stmt.ChildByFieldName("condition")
	negated := condition != nil && isNegated(condition, source)

	if negated {
		return stmt.ChildByFieldName("consequence"), 0
	}

	alternative := stmt.ChildByFieldName("alternative")
	if alternative != nil {
		// else_clause wraps the statement; an "else if" chain keeps its
		// final branch reachable through the nested if statement.
		return alternative, 0
	}
	parent := stmt.Parent()
	if parent == nil {
		return nil, 0
	}
	return parent, stmt.EndByte()
}

// isNegated reports whether a condition reads "!x" (parenthesized or not).
func isNegated(condition *ts.Node, source []byte) bool {
	node := unwrapExpression(condition, source)
	if node == nil {
		return false
	}
	if node.Kind() == "unary_expression" {
		op := node.ChildByFieldName("operator")
		return op != nil && op.Utf8Text(source) == "!"
	}
	return strings.HasPrefix(strings.TrimSpace(node.Utf8Text(source)), "!")
}
