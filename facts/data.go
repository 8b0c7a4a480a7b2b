package facts

// MacroMap maps each macro definition to the set of its unique top-level
// non-argument invocations. The inner set is keyed by invocation
// location: §4.1 step 3 dedups any invocation reported at a location
// already present (a nested invocation reported once per enclosing
// expansion).
type MacroMap map[Macro]map[string]Invocation

// Invocations returns the invocation set for m as a slice. Order is
// unspecified; classification must not depend on it (spec.md §5).
func (mm MacroMap) Invocations(m Macro) []Invocation {
	is := mm[m]
	if len(is) == 0 {
		return nil
	}
	out := make([]Invocation, 0, len(is))
	for _, i := range is {
		out = append(out, i)
	}
	return out
}

// add records i under m, deduplicating by InvocationLocation.
func (mm MacroMap) add(m Macro, i Invocation) {
	is, ok := mm[m]
	if !ok {
		is = make(map[string]Invocation)
		mm[m] = is
	}
	if _, exists := is[i.InvocationLocation]; !exists {
		is[i.InvocationLocation] = i
	}
}

// PreprocessorData is the immutable triple consumed by the
// classification engine: every macro's invocation set, the names the
// preprocessor itself inspected (#if/#ifdef), and the locally included
// file paths. Narrower restrictions (NarrowToSource,
// NarrowToTopLevelNonArgument) are pure functions of their predecessor,
// forming the lattice spec.md §3 describes:
// all → source-only → top-level-non-argument source → interface-equivalent.
type PreprocessorData struct {
	Macros              MacroMap
	InspectedMacroNames map[string]struct{}
	LocalIncludes       map[string]struct{}
}

// NewPreprocessorData returns an empty value ready for ingestion to
// populate.
func NewPreprocessorData() PreprocessorData {
	return PreprocessorData{
		Macros:              make(MacroMap),
		InspectedMacroNames: make(map[string]struct{}),
		LocalIncludes:       make(map[string]struct{}),
	}
}

// IsInspectedByCPP reports whether name was ever tested by a preprocessor
// conditional.
func (pd PreprocessorData) IsInspectedByCPP(name string) bool {
	_, ok := pd.InspectedMacroNames[name]
	return ok
}

// IsLocallyIncluded reports whether path names a file the translation
// unit included locally (as opposed to a system header).
func (pd PreprocessorData) IsLocallyIncluded(path string) bool {
	_, ok := pd.LocalIncludes[path]
	return ok
}

// NarrowToSource returns the subset of macros whose definition location
// lies under root. An empty root matches every macro with a valid
// definition location (spec.md §9's open question, resolved explicitly
// here via Macro.DefinedIn rather than relying on an empty-string-prefix
// accident).
func (pd PreprocessorData) NarrowToSource(root string) PreprocessorData {
	out := NewPreprocessorData()
	out.InspectedMacroNames = pd.InspectedMacroNames
	out.LocalIncludes = pd.LocalIncludes
	for m, is := range pd.Macros {
		if !m.DefinedIn(root) {
			continue
		}
		if _, ok := out.Macros[m]; !ok {
			out.Macros[m] = make(map[string]Invocation)
		}
		for loc, i := range is {
			out.Macros.add(m, i)
			_ = loc
		}
	}
	return out
}

// NarrowToTopLevelNonArgument drops any macro having even one invocation
// that is not top-level non-argument (depth > 0, inside an argument, or
// either location invalid).
func (pd PreprocessorData) NarrowToTopLevelNonArgument() PreprocessorData {
	out := NewPreprocessorData()
	out.InspectedMacroNames = pd.InspectedMacroNames
	out.LocalIncludes = pd.LocalIncludes
	for m, is := range pd.Macros {
		allTopLevel := true
		for _, i := range is {
			if !i.IsTopLevelNonArgument() {
				allTopLevel = false
				break
			}
		}
		if !allTopLevel {
			continue
		}
		if _, ok := out.Macros[m]; !ok {
			out.Macros[m] = make(map[string]Invocation)
		}
		for _, i := range is {
			out.Macros.add(m, i)
		}
	}
	return out
}
