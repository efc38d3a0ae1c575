package extract

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/iconport/pkg/icon"
	"github.com/gnana997/iconport/pkg/parser"
)

// controllerQuery matches "const <name> = <hook>()" declarators.
const controllerQuery = `
(variable_declarator
  name: (identifier) @controller.name
  value: (call_expression
    function: (identifier) @controller.hook)) @controller
`

// controllerHooks are the hooks that create a fresh animation controller.
var controllerHooks = map[string]bool{
	"useAnimation":         true,
	"useAnimationControls": true,
}

// detectControllers returns the declared controllers in source order, or the
// default controller when there are none.
func (x *Extractor) detectControllers(dialect parser.Dialect, root *ts.Node, source []byte) ([]icon.Controller, error) {
	matches, err := x.parsers.Matches(dialect, controllerQuery, root, source)
	if err != nil {
		return nil, err
	}

	var controllers []icon.Controller
	seen := make(map[string]bool)
	for _, m := range matches {
		if !controllerHooks[m.Captures["controller.hook"].Text] {
			continue
		}
		name := m.Captures["controller.name"].Text
		if seen[name] {
			continue
		}
		seen[name] = true
		controllers = append(controllers, icon.Controller{Identifier: name})
	}

	if len(controllers) == 0 {
		return []icon.Controller{icon.DefaultController()}, nil
	}
	return controllers, nil
}
