// Package classify implements the macro classification and translation
// engine: the decision procedure that maps a macro together with every
// one of its invocations to a Target or a Reason, per spec.md §4.2. It
// is a pure function over immutable facts values — no goroutines, no
// shared state, no context.Context, because a single classification
// completes in bounded work proportional to the invocation count times
// the (constant) number of conditions (spec.md §5).
package classify

import (
	"strings"

	"github.com/appleseedlab/merc/config"
	"github.com/appleseedlab/merc/facts"
)

// Classify decides Translate(target) | Reject(reason) for m given its
// invocation set is and the preprocessor data it was ingested from.
// Determinism and the first-failure-wins reason selection are the two
// invariants every caller may rely on (spec.md §8): the iteration order
// of is never changes which Outcome is returned.
func Classify(m facts.Macro, is []facts.Invocation, pd facts.PreprocessorData, cfg config.Config) Outcome {
	if reason, failed := structuralPreconditions(m, is); failed {
		return Reject(reason)
	}

	if reason, failed := globalConditions(m, is, pd); failed {
		return Reject(reason)
	}

	var outcome Outcome
	if m.IsObjectLike {
		outcome = classifyObjectLike(is, cfg)
	} else {
		outcome = classifyFunctionLike(is)
	}
	if !outcome.Translated {
		return outcome
	}

	if reason, skip := technicalLimitation(is); skip {
		return Reject(reason)
	}
	return outcome
}

// structuralPreconditions is spec.md §4.2.1: evaluated in order, first
// failure wins.
func structuralPreconditions(m facts.Macro, is []facts.Invocation) (Reason, bool) {
	for _, i := range is {
		if !i.HasSemanticData() {
			return SyntacticallyInvalidProperty, true
		}
	}
	if len(is) == 0 {
		return MacroNeverExpanded, true
	}
	sig := ""
	for idx, i := range is {
		if idx == 0 {
			sig = i.TypeSignature
			continue
		}
		if i.TypeSignature != sig {
			return Polymorphic, true
		}
	}
	if !m.IsDefinedAtGlobalScope {
		return NonGlobalScope, true
	}
	return 0, false
}

// globalConditions is spec.md §4.2.2, applied to every invocation.
func globalConditions(m facts.Macro, is []facts.Invocation, pd facts.PreprocessorData) (Reason, bool) {
	conditions := []condition{
		{
			holds:  func(i facts.Invocation) bool { return !i.DoesBodyEndWithCompoundStmt },
			reason: SyntacticallyInvalidProperty,
		},
		{
			holds: func(i facts.Invocation) bool {
				return !i.IsInvokedWhereModifiableValueRequired && !i.IsInvokedWhereAddressableValueRequired
			},
			reason: AddressableValueRequired,
		},
		{
			holds: func(i facts.Invocation) bool {
				locallyIncluded := pd.IsLocallyIncluded(i.DefinitionLocationFilename())
				return !(locallyIncluded && !i.MustAlterDeclarationsToTransform())
			},
			reason: CapturesEnvironment,
		},
		{
			holds: func(i facts.Invocation) bool {
				return !i.MustUseMetaprogrammingToTransform() && !pd.IsInspectedByCPP(m.Name)
			},
			reason: UseMetaprogramming,
		},
	}
	return firstFailure(is, conditions)
}

// classifyObjectLike is spec.md §4.2.3: try GlobalVariable, then Enum.
func classifyObjectLike(is []facts.Invocation, cfg config.Config) Outcome {
	canBeVariable := true
	for _, i := range is {
		if i.IsInvokedWhereConstantExpressionRequired || !i.IsExpansionConstantExpression() {
			canBeVariable = false
			break
		}
	}
	if canBeVariable {
		return Translate(GlobalVariable)
	}

	canBeEnum := true
	for _, i := range is {
		if !i.CanBeTurnedIntoEnum() {
			canBeEnum = false
			break
		}
	}
	if canBeEnum {
		for _, i := range is {
			if i.IsInvokedWhereICERequired && !i.IsICERepresentableForIntSize(int(cfg.IntSize)) {
				return Reject(InvokedWhereIceRequiredAndGreaterThanIntSize)
			}
		}
		return Translate(Enum)
	}

	return Reject(CannotTransformToEnumOrVariable)
}

// classifyFunctionLike is spec.md §4.2.4: argument conditions first,
// then try NonVoidFunction, then VoidFunction.
func classifyFunctionLike(is []facts.Invocation) Outcome {
	argConditions := []condition{
		{holds: func(i facts.Invocation) bool { return !i.IsCalledByName() }, reason: CalledByName},
		{holds: func(i facts.Invocation) bool { return !i.IsAnyArgumentExpandedWhereConstExprRequired }, reason: ArgumentInvokedWhereConstExprRequired},
		{holds: func(i facts.Invocation) bool { return !i.IsAnyArgumentTypeVoid }, reason: ArgumentTypeVoid},
		{
			holds: func(i facts.Invocation) bool {
				return !i.IsAnyArgumentExpandedWhereModifiableValueRequired && !i.IsAnyArgumentExpandedWhereAddressableValueRequired
			},
			reason: ArgumentAddressableValueRequired,
		},
		{holds: func(i facts.Invocation) bool { return !i.IsAnyArgumentNotAnExpression }, reason: ArgumentTypeNotExpression},
	}
	if reason, failed := firstFailure(is, argConditions); failed {
		return Reject(reason)
	}

	canBeNonVoid := true
	for _, i := range is {
		if i.IsInvokedWhereConstantExpressionRequired || i.IsExpansionTypeVoid || i.ASTKind != facts.KindExpr {
			canBeNonVoid = false
			break
		}
	}
	if canBeNonVoid {
		return Translate(NonVoidFunction)
	}

	canBeVoid := true
	for _, i := range is {
		if i.IsInvokedWhereConstantExpressionRequired || !i.IsExpansionTypeVoid ||
			(i.ASTKind != facts.KindExpr && i.ASTKind != facts.KindStmt) {
			canBeVoid = false
			break
		}
	}
	if canBeVoid {
		return Translate(VoidFunction)
	}

	return Reject(CannotTransformToFunction)
}

// technicalLimitation is spec.md §4.2.5: pragmatic skips applied after a
// target has already been chosen, distinguishing analyzer limitations
// from genuine semantic rejections in the statistics this feeds.
func technicalLimitation(is []facts.Invocation) (Reason, bool) {
	for _, i := range is {
		if i.IsExpansionTypeFunctionType || i.IsAnyArgumentTypeFunctionType {
			return DefinitionHasFunctionPointer, true
		}
	}
	for _, i := range is {
		if i.DoesBodyContainDeclRefExpr && strings.HasSuffix(i.DefinitionLocationFilename(), ".h") {
			return BodyContainsDeclRefExpr, true
		}
	}
	return 0, false
}
