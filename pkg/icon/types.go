// Package icon defines the intermediate representation produced by the
// extractors and consumed by the rewriter and the template assembler.
package icon

import (
	"fmt"

	"github.com/gnana997/iconport/pkg/naming"
)

// DefaultControllerName is the controller assumed when a source declares none.
const DefaultControllerName = "controls"

// SourceUnit is one input file. It is not modified after it is read.
type SourceUnit struct {
	Path          string
	BaseName      string // kebab-case stem, e.g. "arrow-trending-up"
	ComponentName string // e.g. "ArrowTrendingUpIcon"
	Source        []byte
}

// NewSourceUnit derives the base and component names from path.
func NewSourceUnit(path string, source []byte) SourceUnit {
	stem := naming.Stem(path)
	return SourceUnit{
		Path:          path,
		BaseName:      stem,
		ComponentName: naming.ComponentName(stem),
		Source:        source,
	}
}

// Controller is one independently animated part of an icon.
type Controller struct {
	Identifier string
}

// DefaultController returns the implicit controller.
func DefaultController() Controller {
	return Controller{Identifier: DefaultControllerName}
}

// ActionKind is the event a VariantAction answers to.
type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionStop
	ActionHoverEnter
	ActionHoverLeave
)

// ActionKinds lists every kind in emission order.
func ActionKinds() []ActionKind {
	return []ActionKind{ActionStart, ActionStop, ActionHoverEnter, ActionHoverLeave}
}

func (k ActionKind) String() string {
	switch k {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionHoverEnter:
		return "hover-enter"
	case ActionHoverLeave:
		return "hover-leave"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// DefaultVariant is the variant used when no explicit action was found.
func (k ActionKind) DefaultVariant() string {
	switch k {
	case ActionStart, ActionHoverEnter:
		return "animate"
	default:
		return "normal"
	}
}

// VariantAction records which variant a controller moves to on an event.
type VariantAction struct {
	Controller string
	Kind       ActionKind
	Variant    string
}

// ActionSet holds at most one action per controller for a single kind.
type ActionSet struct {
	Kind    ActionKind
	Actions []VariantAction

	// Reason is set by an extractor when the whole section was missing,
	// e.g. no useImperativeHandle call. It explains later fallbacks.
	Reason string
}

// NewActionSet returns an empty set of the given kind.
func NewActionSet(kind ActionKind) *ActionSet {
	return &ActionSet{Kind: kind}
}

// Add records variant for controller. The first action per controller wins,
// mirroring "first match in the section".
func (s *ActionSet) Add(controller, variant string) bool {
	if _, ok := s.Lookup(controller); ok {
		return false
	}
	s.Actions = append(s.Actions, VariantAction{
		Controller: controller,
		Kind:       s.Kind,
		Variant:    variant,
	})
	return true
}

// Lookup returns the explicit variant for controller.
func (s *ActionSet) Lookup(controller string) (string, bool) {
	for _, a := range s.Actions {
		if a.Controller == controller {
			return a.Variant, true
		}
	}
	return "", false
}

// Resolve returns the variant for controller, falling back to the kind's
// default. It never returns an empty string.
func (s *ActionSet) Resolve(controller string) string {
	if v, ok := s.Lookup(controller); ok && v != "" {
		return v
	}
	return s.Kind.DefaultVariant()
}

// Block is a verbatim span of the source with its byte offsets.
type Block struct {
	Text  string
	Start uint
	End   uint
}

// Empty reports whether the block holds no text.
func (b Block) Empty() bool {
	return b.Text == ""
}

// RewriteDirective describes how one animated element is rebound.
type RewriteDirective struct {
	Controller string
	// Variants is the variant table expression: a constant name or an
	// inline object literal.
	Variants string
	Inline   bool
	// Custom is the stagger index expression, empty when absent.
	Custom string
	// Transition is the transition override expression, empty when absent.
	Transition string
}

// Fallback records a default substituted for a missing action.
type Fallback struct {
	Controller string
	Kind       ActionKind
	Variant    string
	Reason     string
}

func (f Fallback) String() string {
	return fmt.Sprintf("%s: %s defaulted to %q (%s)", f.Controller, f.Kind, f.Variant, f.Reason)
}
