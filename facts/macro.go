package facts

import "strings"

// Macro is a #define. Ingestion maps each invocation to its macro by
// DefinitionLocation; callers that build a MacroMap rely on Macro being
// comparable (all fields are scalars) so it can be used directly as a
// map key, where two values are the same key only when every field
// matches, mirroring the
// Python original's frozen dataclass used as a dict key.
type Macro struct {
	Name                      string
	IsObjectLike              bool
	IsDefinitionLocationValid bool
	IsDefinedAtGlobalScope    bool
	Body                      string
	DefinitionLocation        string
	EndDefinitionLocation     string
}

// IsFunctionLike reports the complement of IsObjectLike.
func (m Macro) IsFunctionLike() bool {
	return !m.IsObjectLike
}

// DefinedIn reports whether the macro's definition location falls under
// dir. An empty dir matches every macro with a valid definition location,
// per spec.md's open question about the empty-prefix case.
func (m Macro) DefinedIn(dir string) bool {
	if !m.IsDefinitionLocationValid {
		return false
	}
	if dir == "" {
		return true
	}
	return strings.HasPrefix(m.DefinitionLocation, dir)
}

// DefinitionLocationFilename returns the file component of
// DefinitionLocation, or the raw location string if it never resolved to
// a valid location.
func (m Macro) DefinitionLocationFilename() string {
	if !m.IsDefinitionLocationValid {
		return m.DefinitionLocation
	}
	return ParseLocation(m.DefinitionLocation).File
}
