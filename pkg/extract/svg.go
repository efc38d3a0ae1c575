package extract

import (
	"errors"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
)

// ErrNoSVGRoot is returned when the source renders no svg element.
var ErrNoSVGRoot = errors.New("no <svg> or <motion.svg> root element")

// findSVGRoot returns the first svg or motion.svg element in document order.
func findSVGRoot(root *ts.Node, source []byte) (*ts.Node, error) {
	node := findFirst(root, func(n *ts.Node) bool {
		name := elementName(n, source)
		return name == "svg" || name == "motion.svg"
	})
	if node == nil {
		return nil, ErrNoSVGRoot
	}

	if node.Kind() == "jsx_element" {
		closing := node.Child(node.ChildCount() - 1)
		if closing == nil || closing.Kind() != "jsx_closing_element" || closing.IsMissing() || closing.StartByte() == closing.EndByte() {
			return nil, icon.ErrUnclosedMarkup
		}
	}
	return node, nil
}

// elementName returns the tag name of a jsx_element or
// jsx_self_closing_element, or "" for any other node.
func elementName(node *ts.Node, source []byte) string {
	var tag *ts.Node
	switch node.Kind() {
	case "jsx_element":
		tag = node.ChildByFieldName("open_tag")
		if tag == nil {
			tag = node.Child(0)
		}
	case "jsx_self_closing_element":
		tag = node
	default:
		return ""
	}
	if tag == nil {
		return ""
	}
	name := tag.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Utf8Text(source)
}

// blockOf returns the exact source span of node.
func blockOf(node *ts.Node, source []byte) icon.Block {
	return icon.Block{
		Text:  string(source[node.StartByte():node.EndByte()]),
		Start: node.StartByte(),
		End:   node.EndByte(),
	}
}
