package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/appleseedlab/merc/facts"
)

// Kind discriminates the four analyzer record shapes.
type Kind string

const (
	KindDefinition     Kind = "Definition"
	KindInvocation     Kind = "Invocation"
	KindInspectedByCPP Kind = "InspectedByCPP"
	KindInclude        Kind = "Include"
)

// rawRecord is the union of every field any of the four record shapes
// can carry. encoding/json leaves fields absent from a given record's
// JSON at their zero value, which is why requiredFields is checked
// separately against the decoded key set before rawRecord is trusted:
// per spec.md §4.1, missing fields are never silently defaulted.
type rawRecord struct {
	Kind Kind `json:"Kind"`

	// Definition / shared.
	Name                      string `json:"Name"`
	IsObjectLike              bool   `json:"IsObjectLike"`
	IsDefinitionLocationValid bool   `json:"IsDefinitionLocationValid"`
	IsDefinedAtGlobalScope    bool   `json:"IsDefinedAtGlobalScope"`
	Body                      string `json:"Body"`
	DefinitionLocation        string `json:"DefinitionLocation"`
	EndDefinitionLocation     string `json:"EndDefinitionLocation"`

	// Invocation.
	InvocationLocation       string         `json:"InvocationLocation"`
	ASTKind                  facts.ASTKind  `json:"ASTKind"`
	TypeSignature            string         `json:"TypeSignature"`
	InvocationDepth          int            `json:"InvocationDepth"`
	NumASTRoots              int            `json:"NumASTRoots"`
	NumArguments             int            `json:"NumArguments"`
	IsInvocationLocationValid bool          `json:"IsInvocationLocationValid"`
	IsInvokedInMacroArgument bool           `json:"IsInvokedInMacroArgument"`

	HasStringification             bool `json:"HasStringification"`
	HasTokenPasting                 bool `json:"HasTokenPasting"`
	HasAlignedArguments             bool `json:"HasAlignedArguments"`
	HasSameNameAsOtherDeclaration   bool `json:"HasSameNameAsOtherDeclaration"`
	IsExpansionControlFlowStmt      bool `json:"IsExpansionControlFlowStmt"`

	DoesBodyReferenceMacroDefinedAfterMacro                    bool `json:"DoesBodyReferenceMacroDefinedAfterMacro"`
	DoesBodyReferenceDeclDeclaredAfterMacro                    bool `json:"DoesBodyReferenceDeclDeclaredAfterMacro"`
	DoesBodyContainDeclRefExpr                                 bool `json:"DoesBodyContainDeclRefExpr"`
	DoesBodyEndWithCompoundStmt                                bool `json:"DoesBodyEndWithCompoundStmt"`
	DoesSubexpressionExpandedFromBodyHaveLocalType             bool `json:"DoesSubexpressionExpandedFromBodyHaveLocalType"`
	DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro bool `json:"DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro"`

	DoesAnyArgumentHaveSideEffects   bool `json:"DoesAnyArgumentHaveSideEffects"`
	DoesAnyArgumentContainDeclRefExpr bool `json:"DoesAnyArgumentContainDeclRefExpr"`

	IsHygienic                bool `json:"IsHygienic"`
	IsICERepresentableByInt32 bool `json:"IsICERepresentableByInt32"`
	IsICERepresentableByInt16 bool `json:"IsICERepresentableByInt16"`
	IsNamePresentInCPPConditional bool `json:"IsNamePresentInCPPConditional"`
	IsExpansionICE             bool `json:"IsExpansionICE"`

	IsExpansionTypeNull             bool `json:"IsExpansionTypeNull"`
	IsExpansionTypeAnonymous        bool `json:"IsExpansionTypeAnonymous"`
	IsExpansionTypeLocalType        bool `json:"IsExpansionTypeLocalType"`
	IsExpansionTypeDefinedAfterMacro bool `json:"IsExpansionTypeDefinedAfterMacro"`
	IsExpansionTypeVoid             bool `json:"IsExpansionTypeVoid"`
	IsExpansionTypeFunctionType      bool `json:"IsExpansionTypeFunctionType"`

	IsAnyArgumentTypeNull            bool `json:"IsAnyArgumentTypeNull"`
	IsAnyArgumentTypeAnonymous       bool `json:"IsAnyArgumentTypeAnonymous"`
	IsAnyArgumentTypeLocalType       bool `json:"IsAnyArgumentTypeLocalType"`
	IsAnyArgumentTypeDefinedAfterMacro bool `json:"IsAnyArgumentTypeDefinedAfterMacro"`
	IsAnyArgumentTypeVoid            bool `json:"IsAnyArgumentTypeVoid"`
	IsAnyArgumentTypeFunctionType     bool `json:"IsAnyArgumentTypeFunctionType"`

	IsInvokedWhereModifiableValueRequired              bool `json:"IsInvokedWhereModifiableValueRequired"`
	IsInvokedWhereAddressableValueRequired              bool `json:"IsInvokedWhereAddressableValueRequired"`
	IsAnyArgumentExpandedWhereConstExprRequired         bool `json:"IsAnyArgumentExpandedWhereConstExprRequired"`
	IsInvokedWhereICERequired                           bool `json:"IsInvokedWhereICERequired"`
	IsInvokedWhereConstantExpressionRequired            bool `json:"IsInvokedWhereConstantExpressionRequired"`
	IsAnyArgumentExpandedWhereModifiableValueRequired   bool `json:"IsAnyArgumentExpandedWhereModifiableValueRequired"`
	IsAnyArgumentExpandedWhereAddressableValueRequired  bool `json:"IsAnyArgumentExpandedWhereAddressableValueRequired"`
	IsAnyArgumentConditionallyEvaluated                 bool `json:"IsAnyArgumentConditionallyEvaluated"`
	IsAnyArgumentNeverExpanded                          bool `json:"IsAnyArgumentNeverExpanded"`
	IsAnyArgumentNotAnExpression                         bool `json:"IsAnyArgumentNotAnExpression"`

	// InspectedByCPP has only Name, shared above.

	// Include.
	IncludeName string `json:"IncludeName"`
	IsValid     bool   `json:"IsValid"`
}

var definitionFields = []string{
	"Name", "IsObjectLike", "IsDefinitionLocationValid", "IsDefinedAtGlobalScope",
	"Body", "DefinitionLocation", "EndDefinitionLocation",
}

var invocationFields = []string{
	"Name", "DefinitionLocation", "InvocationLocation", "ASTKind", "TypeSignature",
	"InvocationDepth", "NumASTRoots", "NumArguments",
	"IsDefinitionLocationValid", "IsInvocationLocationValid", "IsInvokedInMacroArgument",
	"HasStringification", "HasTokenPasting", "HasAlignedArguments", "HasSameNameAsOtherDeclaration",
	"IsExpansionControlFlowStmt",
	"DoesBodyReferenceMacroDefinedAfterMacro", "DoesBodyReferenceDeclDeclaredAfterMacro",
	"DoesBodyContainDeclRefExpr", "DoesBodyEndWithCompoundStmt",
	"DoesSubexpressionExpandedFromBodyHaveLocalType", "DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro",
	"DoesAnyArgumentHaveSideEffects", "DoesAnyArgumentContainDeclRefExpr",
	"IsHygienic", "IsICERepresentableByInt32", "IsICERepresentableByInt16",
	"IsObjectLike", "IsNamePresentInCPPConditional", "IsExpansionICE",
	"IsExpansionTypeNull", "IsExpansionTypeAnonymous", "IsExpansionTypeLocalType",
	"IsExpansionTypeDefinedAfterMacro", "IsExpansionTypeVoid", "IsExpansionTypeFunctionType",
	"IsAnyArgumentTypeNull", "IsAnyArgumentTypeAnonymous", "IsAnyArgumentTypeLocalType",
	"IsAnyArgumentTypeDefinedAfterMacro", "IsAnyArgumentTypeVoid", "IsAnyArgumentTypeFunctionType",
	"IsInvokedWhereModifiableValueRequired", "IsInvokedWhereAddressableValueRequired",
	"IsAnyArgumentExpandedWhereConstExprRequired", "IsInvokedWhereICERequired",
	"IsInvokedWhereConstantExpressionRequired", "IsAnyArgumentExpandedWhereModifiableValueRequired",
	"IsAnyArgumentExpandedWhereAddressableValueRequired", "IsAnyArgumentConditionallyEvaluated",
	"IsAnyArgumentNeverExpanded", "IsAnyArgumentNotAnExpression",
}

var inspectedByCPPFields = []string{"Name"}

var includeFields = []string{"IncludeName", "IsValid"}

func requiredFieldsFor(k Kind) ([]string, error) {
	switch k {
	case KindDefinition:
		return definitionFields, nil
	case KindInvocation:
		return invocationFields, nil
	case KindInspectedByCPP:
		return inspectedByCPPFields, nil
	case KindInclude:
		return includeFields, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", k)
	}
}

// decodeRecords parses the analyzer's JSON array into rawRecords,
// reporting one diagnostic per malformed element rather than aborting on
// the first (so ingest.Errors can report everything wrong with a file in
// one pass).
func decodeRecords(data []byte) ([]rawRecord, *Errors) {
	errs := NewErrors()

	var generic []map[string]json.RawMessage
	if err := json.Unmarshal(data, &generic); err != nil {
		errs.Report(-1, "analyzer output is not a JSON array: %v", err)
		return nil, errs
	}

	records := make([]rawRecord, 0, len(generic))
	for idx, obj := range generic {
		kindRaw, ok := obj["Kind"]
		if !ok {
			errs.Report(idx, "missing required field %q", "Kind")
			continue
		}
		var kind Kind
		if err := json.Unmarshal(kindRaw, &kind); err != nil {
			errs.Report(idx, "field %q is not a string: %v", "Kind", err)
			continue
		}

		required, err := requiredFieldsFor(kind)
		if err != nil {
			errs.Report(idx, "%v", err)
			continue
		}

		missing := false
		for _, field := range required {
			if _, present := obj[field]; !present {
				errs.Report(idx, "record of kind %q missing required field %q", kind, field)
				missing = true
			}
		}
		if missing {
			continue
		}

		raw, err := json.Marshal(obj)
		if err != nil {
			errs.Report(idx, "internal error re-encoding record: %v", err)
			continue
		}
		var rec rawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			errs.Report(idx, "%v", err)
			continue
		}
		records = append(records, rec)
	}

	return records, errs
}
