package extract

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
)

const (
	handleHook = "useImperativeHandle"
	startKey   = "startAnimation"
	stopKey    = "stopAnimation"
)

// extractHandle resolves the start and stop actions exposed through the
// imperative handle. Controllers without a match are left for Icon.Complete,
// with the reason recorded on the set when a whole section is missing.
func extractHandle(root *ts.Node, source []byte, controllers []icon.Controller, start, stop *icon.ActionSet) {
	call := findFirst(root, func(n *ts.Node) bool {
		name := calleeName(n, source)
		return name == handleHook || name == "React."+handleHook
	})
	if call == nil {
		start.Reason = "no useImperativeHandle call"
		stop.Reason = start.Reason
		return
	}

	sections := []struct {
		key string
		set *icon.ActionSet
	}{
		{startKey, start},
		{stopKey, stop},
	}
	for _, s := range sections {
		section := handleMember(call, source, s.key)
		if section == nil {
			s.set.Reason = "no " + s.key + " in useImperativeHandle"
			continue
		}
		for _, c := range controllers {
			if variant, ok := controllerCall(section, source, c.Identifier, 0); ok {
				s.set.Add(c.Identifier, variant)
			}
		}
	}
}

// handleMember returns the value of the object member named key (a pair
// value or a method definition) below node.
func handleMember(node *ts.Node, source []byte, key string) *ts.Node {
	member := findFirst(node, func(n *ts.Node) bool {
		switch n.Kind() {
		case "pair":
			k := n.ChildByFieldName("key")
			return k != nil && propertyKey(k, source) == key
		case "method_definition":
			name := n.ChildByFieldName("name")
			return name != nil && propertyKey(name, source) == key
		}
		return false
	})
	if member == nil {
		return nil
	}
	if member.Kind() == "pair" {
		return member.ChildByFieldName("value")
	}
	return member.ChildByFieldName("body")
}

// propertyKey returns an object key without quotes.
func propertyKey(node *ts.Node, source []byte) string {
	if v, ok := stringValue(node, source); ok {
		return v
	}
	return node.Utf8Text(source)
}
