package icon

import (
	"errors"
	"fmt"
)

// Icon is the validated intermediate representation of one source file.
type Icon struct {
	Unit        SourceUnit
	Controllers []Controller
	Variants    Block
	Markup      Block

	Start      *ActionSet
	Stop       *ActionSet
	HoverEnter *ActionSet
	HoverLeave *ActionSet

	Fallbacks []Fallback
}

// New returns an Icon with empty action sets.
func New(unit SourceUnit) *Icon {
	return &Icon{
		Unit:       unit,
		Start:      NewActionSet(ActionStart),
		Stop:       NewActionSet(ActionStop),
		HoverEnter: NewActionSet(ActionHoverEnter),
		HoverLeave: NewActionSet(ActionHoverLeave),
	}
}

// Actions returns the set for kind.
func (ic *Icon) Actions(kind ActionKind) *ActionSet {
	switch kind {
	case ActionStart:
		return ic.Start
	case ActionStop:
		return ic.Stop
	case ActionHoverEnter:
		return ic.HoverEnter
	default:
		return ic.HoverLeave
	}
}

// HasController reports whether identifier was declared.
func (ic *Icon) HasController(identifier string) bool {
	for _, c := range ic.Controllers {
		if c.Identifier == identifier {
			return true
		}
	}
	return false
}

// ControllerNames returns the identifiers in declaration order.
func (ic *Icon) ControllerNames() []string {
	names := make([]string, len(ic.Controllers))
	for i, c := range ic.Controllers {
		names[i] = c.Identifier
	}
	return names
}

// Complete fills every missing (controller, kind) action with the kind's
// default and records a Fallback for each one. It returns the fallbacks
// added by this call.
func (ic *Icon) Complete() []Fallback {
	var added []Fallback
	for _, kind := range ActionKinds() {
		set := ic.Actions(kind)
		for _, c := range ic.Controllers {
			if _, ok := set.Lookup(c.Identifier); ok {
				continue
			}
			reason := set.Reason
			if reason == "" {
				reason = fmt.Sprintf("no %s.start(...) call", c.Identifier)
			}
			fb := Fallback{
				Controller: c.Identifier,
				Kind:       kind,
				Variant:    kind.DefaultVariant(),
				Reason:     reason,
			}
			set.Add(c.Identifier, fb.Variant)
			added = append(added, fb)
		}
	}
	ic.Fallbacks = append(ic.Fallbacks, added...)
	return added
}

var (
	ErrNoControllers       = errors.New("no controllers")
	ErrDuplicateController = errors.New("duplicate controller")
	ErrDanglingController  = errors.New("action references undeclared controller")
	ErrEmptyVariant        = errors.New("action has empty variant name")
	ErrUnbalanced          = errors.New("unbalanced block")
	ErrNoMarkup            = errors.New("no svg markup")
	ErrUnclosedMarkup      = errors.New("svg markup is not closed")
)

// Validate checks the structural invariants of the representation.
func (ic *Icon) Validate() error {
	if len(ic.Controllers) == 0 {
		return ErrNoControllers
	}
	seen := make(map[string]bool, len(ic.Controllers))
	for _, c := range ic.Controllers {
		if seen[c.Identifier] {
			return fmt.Errorf("%w: %s", ErrDuplicateController, c.Identifier)
		}
		seen[c.Identifier] = true
	}

	for _, kind := range ActionKinds() {
		for _, a := range ic.Actions(kind).Actions {
			if !seen[a.Controller] {
				return fmt.Errorf("%w: %s (%s)", ErrDanglingController, a.Controller, kind)
			}
			if a.Variant == "" {
				return fmt.Errorf("%w: %s (%s)", ErrEmptyVariant, a.Controller, kind)
			}
		}
	}

	if !Balanced(ic.Variants.Text) {
		return fmt.Errorf("%w: variant declarations", ErrUnbalanced)
	}

	if ic.Markup.Empty() {
		return ErrNoMarkup
	}
	if !Closed(ic.Markup.Text) {
		return ErrUnclosedMarkup
	}
	return nil
}
