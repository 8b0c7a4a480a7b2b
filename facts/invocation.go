package facts

// ASTKind is the syntactic position an invocation's expansion occupies.
type ASTKind string

const (
	KindDecl    ASTKind = "Decl"
	KindStmt    ASTKind = "Stmt"
	KindTypeLoc ASTKind = "TypeLoc"
	KindExpr    ASTKind = "Expr"
)

// Invocation is one macro expansion site, deduplicated within a macro by
// InvocationLocation (two reported invocations at the same location are
// the same nested expansion reported twice and collapse to one). Fields
// are grouped by the facet of classification they inform, per spec.md §3.
type Invocation struct {
	// Identity & context.
	Name                  string
	DefinitionLocation    string
	InvocationLocation    string
	ASTKind               ASTKind
	InvocationDepth       int
	IsInvokedInMacroArgument bool
	TypeSignature         string
	IsObjectLike          bool
	IsDefinitionLocationValid bool
	IsInvocationLocationValid bool

	// Body properties.
	DoesBodyReferenceMacroDefinedAfterMacro                 bool
	DoesBodyReferenceDeclDeclaredAfterMacro                 bool
	DoesBodyEndWithCompoundStmt                             bool
	DoesBodyContainDeclRefExpr                              bool
	DoesSubexpressionExpandedFromBodyHaveLocalType          bool
	DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro bool

	// Argument properties.
	DoesAnyArgumentHaveSideEffects                     bool
	IsAnyArgumentConditionallyEvaluated                bool
	IsAnyArgumentNeverExpanded                         bool
	IsAnyArgumentNotAnExpression                       bool
	IsAnyArgumentExpandedWhereConstExprRequired        bool
	IsAnyArgumentExpandedWhereModifiableValueRequired  bool
	IsAnyArgumentExpandedWhereAddressableValueRequired bool
	IsAnyArgumentTypeVoid                              bool
	IsAnyArgumentTypeFunctionType                       bool
	IsAnyArgumentTypeAnonymous                          bool
	IsAnyArgumentTypeLocalType                          bool
	IsAnyArgumentTypeDefinedAfterMacro                  bool
	DoesAnyArgumentContainDeclRefExpr                   bool

	// Call-site context.
	IsInvokedWhereModifiableValueRequired         bool
	IsInvokedWhereAddressableValueRequired        bool
	IsInvokedWhereICERequired                     bool
	IsInvokedWhereConstantExpressionRequired      bool

	// Hygiene & metaprogramming.
	IsHygienic                      bool
	HasStringification              bool
	HasTokenPasting                 bool
	IsNamePresentInCPPConditional   bool
	IsExpansionTypeVoid             bool
	IsExpansionTypeNull             bool
	IsExpansionTypeAnonymous        bool
	IsExpansionTypeLocalType        bool
	IsExpansionTypeDefinedAfterMacro bool
	IsExpansionTypeFunctionType      bool
	IsExpansionICE                   bool
	IsICERepresentableByInt32        bool
	IsICERepresentableByInt16        bool
	IsExpansionControlFlowStmt       bool

	// Shape.
	NumASTRoots                   int
	NumArguments                  int
	HasAlignedArguments           bool
	HasSameNameAsOtherDeclaration bool
}

// IsFunctionLike is the complement of IsObjectLike.
func (i Invocation) IsFunctionLike() bool {
	return !i.IsObjectLike
}

// DefinitionLocationFilename returns the file component of
// DefinitionLocation, falling back to the raw string when the location
// never resolved (matches Macro.DefinitionLocationFilename).
func (i Invocation) DefinitionLocationFilename() string {
	if !i.IsDefinitionLocationValid {
		return i.DefinitionLocation
	}
	return ParseLocation(i.DefinitionLocation).File
}

// IsTopLevelNonArgument reports whether this invocation occurs in source
// position: not nested inside another expansion, not inside a macro
// argument, and both its locations resolved.
func (i Invocation) IsTopLevelNonArgument() bool {
	return i.InvocationDepth == 0 &&
		!i.IsInvokedInMacroArgument &&
		i.IsInvocationLocationValid &&
		i.IsDefinitionLocationValid
}

// IsAligned reports whether the expansion maps to exactly one AST root
// with argument positions aligned to AST subexpressions. Callers must
// only evaluate this once IsTopLevelNonArgument holds.
func (i Invocation) IsAligned() bool {
	return i.IsTopLevelNonArgument() && i.NumASTRoots == 1 && i.HasAlignedArguments
}

// HasSemanticData is the structural precondition every downstream
// predicate assumes has already been checked; it is evaluated exactly
// once per spec.md §9's open question, never re-tested by the
// conditions that follow it.
func (i Invocation) HasSemanticData() bool {
	return i.IsTopLevelNonArgument() &&
		!i.IsAnyArgumentNeverExpanded &&
		i.IsAligned() &&
		!(i.ASTKind == KindExpr && i.IsExpansionTypeNull)
}

// IsExpansionConstantExpression reports whether the macro's expansion
// itself denotes a C constant expression: an Expr AST root that never
// references a declaration.
func (i Invocation) IsExpansionConstantExpression() bool {
	return i.ASTKind == KindExpr && !i.DoesBodyContainDeclRefExpr
}

// CanBeTurnedIntoEnum reports the object-like enumerator eligibility
// condition: the expansion must be an integral constant expression.
func (i Invocation) CanBeTurnedIntoEnum() bool {
	return i.IsExpansionICE
}

// IsICERepresentableForIntSize reports whether this invocation's ICE
// value (when it is one) fits the configured enum-backing int width.
func (i Invocation) IsICERepresentableForIntSize(intSize int) bool {
	if intSize == 16 {
		return i.IsICERepresentableByInt16
	}
	return i.IsICERepresentableByInt32
}

// CanBeTurnedIntoVariable reports the object-like static-const
// eligibility condition.
func (i Invocation) CanBeTurnedIntoVariable() bool {
	return i.IsExpansionConstantExpression() &&
		!i.IsInvokedWhereICERequired &&
		!i.IsExpansionTypeVoid
}

// CanBeTurnedIntoFunction reports the function-like translation
// eligibility condition shared by both VoidFunction and NonVoidFunction.
func (i Invocation) CanBeTurnedIntoFunction() bool {
	return (i.ASTKind == KindStmt || i.ASTKind == KindExpr) && !i.IsInvokedWhereICERequired
}

// IsCalledByName reports whether this invocation must preserve
// call-by-name semantics: an argument with side effects, or one that is
// conditionally evaluated, cannot be rebound to call-by-value without
// changing behavior.
func (i Invocation) IsCalledByName() bool {
	return i.IsAnyArgumentConditionallyEvaluated || i.DoesAnyArgumentHaveSideEffects
}

// MustAlterArgumentsOrReturnTypeToTransform reports whether translating
// this invocation would require changing argument or return-type
// handling: loss of hygiene, or an lvalue-context call site.
func (i Invocation) MustAlterArgumentsOrReturnTypeToTransform() bool {
	return !i.IsHygienic ||
		i.IsInvokedWhereModifiableValueRequired ||
		i.IsInvokedWhereAddressableValueRequired ||
		i.IsAnyArgumentExpandedWhereModifiableValueRequired ||
		i.IsAnyArgumentExpandedWhereAddressableValueRequired
}

// MustAlterDeclarationsToTransform reports whether translating this
// invocation would require altering surrounding declarations (ordering,
// scoping, or introducing a type that doesn't otherwise exist at C
// scope).
func (i Invocation) MustAlterDeclarationsToTransform() bool {
	return i.HasSameNameAsOtherDeclaration ||
		i.DoesBodyReferenceMacroDefinedAfterMacro ||
		i.DoesBodyReferenceDeclDeclaredAfterMacro ||
		i.DoesSubexpressionExpandedFromBodyHaveLocalType ||
		i.DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro ||
		i.IsExpansionTypeAnonymous ||
		i.IsExpansionTypeLocalType ||
		i.IsExpansionTypeDefinedAfterMacro ||
		i.ASTKind == KindTypeLoc
}

// MustAlterCallSiteToTransform reports whether the call site itself
// would need to change shape to accommodate a C-level binding.
func (i Invocation) MustAlterCallSiteToTransform() bool {
	if !i.IsAligned() {
		return true
	}
	return i.IsAnyArgumentConditionallyEvaluated
}

// MustCreateThunksToTransform reports whether any argument would need to
// be wrapped in a thunk to preserve its original evaluation semantics.
func (i Invocation) MustCreateThunksToTransform() bool {
	return i.DoesAnyArgumentHaveSideEffects || i.IsAnyArgumentTypeVoid
}

// MustUseMetaprogrammingToTransform reports whether the macro relies on
// a preprocessor metaprogramming feature with no C-level equivalent:
// stringification, token pasting, a non-expression argument passed to an
// otherwise-function-shaped macro, a control-flow statement in the
// expansion, or the macro's name being tested by the preprocessor
// itself.
func (i Invocation) MustUseMetaprogrammingToTransform() bool {
	return i.HasStringification ||
		i.HasTokenPasting ||
		(i.IsFunctionLike() && i.CanBeTurnedIntoFunction() && i.IsAnyArgumentNotAnExpression) ||
		i.IsExpansionControlFlowStmt ||
		i.IsNamePresentInCPPConditional
}
