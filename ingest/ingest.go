// Package ingest turns a raw analyzer record stream into a
// facts.PreprocessorData value narrowed to top-level, non-argument
// source invocations, per spec.md §4.1.
package ingest

import (
	"github.com/golang/glog"

	"github.com/appleseedlab/merc/facts"
)

// Ingest parses records into a PreprocessorData value already narrowed
// to top-level, non-argument invocations under sourceRoot. Malformed
// records are fatal: if any diagnostic was reported while decoding, or
// if an invocation's DefinitionLocation never maps to a definition seen
// earlier in the stream, Ingest returns the *Errors holding every such
// diagnostic together with an empty PreprocessorData, matching spec.md
// §7 ("malformed records abort ingestion with a fatal error"). On
// success the returned *Errors is empty.
func Ingest(data []byte, sourceRoot string) (facts.PreprocessorData, *Errors) {
	records, errs := decodeRecords(data)
	if errs.HasErrors() {
		return facts.PreprocessorData{}, errs
	}

	// Step 1: uniqueness filter. Count definition names; keep only
	// those seen exactly once; drop any definition or invocation
	// bearing a dropped name. Preserves the C one-definition rule
	// downstream.
	defCounts := make(map[string]int)
	for _, r := range records {
		if r.Kind == KindDefinition {
			defCounts[r.Name]++
		}
	}
	unique := func(name string) bool { return defCounts[name] == 1 }

	for _, r := range records {
		if (r.Kind == KindDefinition || r.Kind == KindInvocation) && !unique(r.Name) {
			glog.V(1).Infof("ingest: dropping %q, %d definitions share its name", r.Name, defCounts[r.Name])
		}
	}

	pd := facts.NewPreprocessorData()

	// Step 2: definitions before invocations, so every invocation can be
	// mapped to its defining macro via the shared definition location.
	defByLocation := make(map[string]facts.Macro)
	for _, r := range records {
		if r.Kind != KindDefinition || !unique(r.Name) {
			continue
		}
		m := facts.Macro{
			Name:                      r.Name,
			IsObjectLike:              r.IsObjectLike,
			IsDefinitionLocationValid: r.IsDefinitionLocationValid,
			IsDefinedAtGlobalScope:    r.IsDefinedAtGlobalScope,
			Body:                      r.Body,
			DefinitionLocation:        r.DefinitionLocation,
			EndDefinitionLocation:     r.EndDefinitionLocation,
		}
		if _, exists := pd.Macros[m]; !exists {
			pd.Macros[m] = make(map[string]facts.Invocation)
		}
		if m.IsDefinitionLocationValid {
			defByLocation[m.DefinitionLocation] = m
		}
	}

	for idx, r := range records {
		switch r.Kind {
		case KindInspectedByCPP:
			pd.InspectedMacroNames[r.Name] = struct{}{}
		case KindInclude:
			if r.IsValid {
				pd.LocalIncludes[r.IncludeName] = struct{}{}
			}
		case KindInvocation:
			if !unique(r.Name) {
				continue
			}
			if !r.IsDefinitionLocationValid {
				continue
			}
			m, ok := defByLocation[r.DefinitionLocation]
			if !ok {
				errs.Report(idx, "invocation of %q references unknown definition location %q", r.Name, r.DefinitionLocation)
				continue
			}
			i := invocationFromRecord(r)
			// Step 3: within one macro's invocation set, reject any
			// invocation whose location matches one already present.
			if _, exists := pd.Macros[m][i.InvocationLocation]; exists {
				glog.V(2).Infof("ingest: collapsing duplicate invocation of %q at %s", m.Name, i.InvocationLocation)
				continue
			}
			pd.Macros[m][i.InvocationLocation] = i
		}
	}

	if errs.HasErrors() {
		return facts.PreprocessorData{}, errs
	}

	// Step 4 & 5: narrow to source, then to top-level non-argument.
	narrowed := pd.NarrowToSource(sourceRoot).NarrowToTopLevelNonArgument()
	return narrowed, NewErrors()
}

func invocationFromRecord(r rawRecord) facts.Invocation {
	return facts.Invocation{
		Name:                      r.Name,
		DefinitionLocation:        r.DefinitionLocation,
		InvocationLocation:        r.InvocationLocation,
		ASTKind:                   r.ASTKind,
		InvocationDepth:           r.InvocationDepth,
		IsInvokedInMacroArgument:  r.IsInvokedInMacroArgument,
		TypeSignature:             r.TypeSignature,
		IsObjectLike:              r.IsObjectLike,
		IsDefinitionLocationValid: r.IsDefinitionLocationValid,
		IsInvocationLocationValid: r.IsInvocationLocationValid,

		DoesBodyReferenceMacroDefinedAfterMacro:                    r.DoesBodyReferenceMacroDefinedAfterMacro,
		DoesBodyReferenceDeclDeclaredAfterMacro:                    r.DoesBodyReferenceDeclDeclaredAfterMacro,
		DoesBodyEndWithCompoundStmt:                                r.DoesBodyEndWithCompoundStmt,
		DoesBodyContainDeclRefExpr:                                 r.DoesBodyContainDeclRefExpr,
		DoesSubexpressionExpandedFromBodyHaveLocalType:             r.DoesSubexpressionExpandedFromBodyHaveLocalType,
		DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro: r.DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro,

		DoesAnyArgumentHaveSideEffects:                     r.DoesAnyArgumentHaveSideEffects,
		IsAnyArgumentConditionallyEvaluated:                r.IsAnyArgumentConditionallyEvaluated,
		IsAnyArgumentNeverExpanded:                         r.IsAnyArgumentNeverExpanded,
		IsAnyArgumentNotAnExpression:                       r.IsAnyArgumentNotAnExpression,
		IsAnyArgumentExpandedWhereConstExprRequired:        r.IsAnyArgumentExpandedWhereConstExprRequired,
		IsAnyArgumentExpandedWhereModifiableValueRequired:  r.IsAnyArgumentExpandedWhereModifiableValueRequired,
		IsAnyArgumentExpandedWhereAddressableValueRequired: r.IsAnyArgumentExpandedWhereAddressableValueRequired,
		IsAnyArgumentTypeVoid:                              r.IsAnyArgumentTypeVoid,
		IsAnyArgumentTypeFunctionType:                      r.IsAnyArgumentTypeFunctionType,
		IsAnyArgumentTypeAnonymous:                         r.IsAnyArgumentTypeAnonymous,
		IsAnyArgumentTypeLocalType:                         r.IsAnyArgumentTypeLocalType,
		IsAnyArgumentTypeDefinedAfterMacro:                 r.IsAnyArgumentTypeDefinedAfterMacro,
		DoesAnyArgumentContainDeclRefExpr:                  r.DoesAnyArgumentContainDeclRefExpr,

		IsInvokedWhereModifiableValueRequired:    r.IsInvokedWhereModifiableValueRequired,
		IsInvokedWhereAddressableValueRequired:   r.IsInvokedWhereAddressableValueRequired,
		IsInvokedWhereICERequired:                r.IsInvokedWhereICERequired,
		IsInvokedWhereConstantExpressionRequired: r.IsInvokedWhereConstantExpressionRequired,

		IsHygienic:                     r.IsHygienic,
		HasStringification:             r.HasStringification,
		HasTokenPasting:                r.HasTokenPasting,
		IsNamePresentInCPPConditional:  r.IsNamePresentInCPPConditional,
		IsExpansionTypeVoid:            r.IsExpansionTypeVoid,
		IsExpansionTypeNull:            r.IsExpansionTypeNull,
		IsExpansionTypeAnonymous:       r.IsExpansionTypeAnonymous,
		IsExpansionTypeLocalType:       r.IsExpansionTypeLocalType,
		IsExpansionTypeDefinedAfterMacro: r.IsExpansionTypeDefinedAfterMacro,
		IsExpansionTypeFunctionType:    r.IsExpansionTypeFunctionType,
		IsExpansionICE:                 r.IsExpansionICE,
		IsICERepresentableByInt32:      r.IsICERepresentableByInt32,
		IsICERepresentableByInt16:      r.IsICERepresentableByInt16,
		IsExpansionControlFlowStmt:     r.IsExpansionControlFlowStmt,

		NumASTRoots:                   r.NumASTRoots,
		NumArguments:                  r.NumArguments,
		HasAlignedArguments:           r.HasAlignedArguments,
		HasSameNameAsOtherDeclaration: r.HasSameNameAsOtherDeclaration,
	}
}
