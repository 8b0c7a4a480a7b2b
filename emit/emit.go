// Package emit renders the C surface text for a macro once classify has
// chosen a translation target, per spec.md §4.3.
package emit

import (
	"fmt"

	"github.com/appleseedlab/merc/classify"
	"github.com/appleseedlab/merc/facts"
)

// Render returns the replacement C text for m given the chosen target.
// sig is the type signature to use — any invocation's, since §4.2.1
// guarantees every invocation of a translatable macro shares one type
// signature. static is mandatory on the function and variable forms to
// avoid ODR conflicts when the emitted header is included from multiple
// translation units.
func Render(m facts.Macro, sig string, target classify.Target) string {
	switch target {
	case classify.VoidFunction:
		return fmt.Sprintf("static inline %s { %s; }", sig, m.Body)
	case classify.NonVoidFunction:
		return fmt.Sprintf("static inline %s { return %s; }", sig, m.Body)
	case classify.GlobalVariable:
		return fmt.Sprintf("static const %s = %s;", sig, m.Body)
	case classify.Enum:
		return fmt.Sprintf("enum { %s = %s };", m.Name, m.Body)
	default:
		panic(fmt.Sprintf("emit: unknown translation target %v", target))
	}
}
