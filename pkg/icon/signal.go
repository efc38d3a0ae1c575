package icon

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Signal is the reactive getter/setter pair generated for one controller.
type Signal struct {
	Controller string
	Getter     string
	Setter     string
}

var controllerSuffixes = []string{"Controls", "Controller", "Animation"}

// Signals derives one signal per controller, in controller order. A single
// controller always maps to variant/setVariant.
func Signals(controllers []Controller) []Signal {
	if len(controllers) == 0 {
		controllers = []Controller{DefaultController()}
	}
	if len(controllers) == 1 {
		return []Signal{{
			Controller: controllers[0].Identifier,
			Getter:     "variant",
			Setter:     "setVariant",
		}}
	}

	used := make(map[string]bool, len(controllers))
	signals := make([]Signal, 0, len(controllers))
	for _, c := range controllers {
		stem := signalStem(c.Identifier)
		name := stem
		for i := 2; used[name]; i++ {
			name = stem + strconv.Itoa(i)
		}
		used[name] = true

		signals = append(signals, Signal{
			Controller: c.Identifier,
			Getter:     name + "Variant",
			Setter:     "set" + upperFirst(name) + "Variant",
		})
	}
	return signals
}

// SignalFor returns the signal bound to controller.
func SignalFor(signals []Signal, controller string) (Signal, bool) {
	for _, s := range signals {
		if s.Controller == controller {
			return s, true
		}
	}
	return Signal{}, false
}

func signalStem(identifier string) string {
	for _, suffix := range controllerSuffixes {
		if stem, ok := strings.CutSuffix(identifier, suffix); ok && stem != "" {
			return stem
		}
	}
	return identifier
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
