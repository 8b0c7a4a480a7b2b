package ingest

import (
	"strings"
	"testing"
)

func definitionRecord(name, loc string) string {
	return `{
		"Kind": "Definition",
		"Name": "` + name + `",
		"IsObjectLike": true,
		"IsDefinitionLocationValid": true,
		"IsDefinedAtGlobalScope": true,
		"Body": "1",
		"DefinitionLocation": "` + loc + `",
		"EndDefinitionLocation": "` + loc + `"
	}`
}

func invocationRecord(name, defLoc, invLoc string) string {
	return `{
		"Kind": "Invocation",
		"Name": "` + name + `",
		"DefinitionLocation": "` + defLoc + `",
		"InvocationLocation": "` + invLoc + `",
		"ASTKind": "Expr",
		"TypeSignature": "int x",
		"InvocationDepth": 0,
		"NumASTRoots": 1,
		"NumArguments": 0,
		"IsDefinitionLocationValid": true,
		"IsInvocationLocationValid": true,
		"IsInvokedInMacroArgument": false,
		"HasStringification": false,
		"HasTokenPasting": false,
		"HasAlignedArguments": true,
		"HasSameNameAsOtherDeclaration": false,
		"IsExpansionControlFlowStmt": false,
		"DoesBodyReferenceMacroDefinedAfterMacro": false,
		"DoesBodyReferenceDeclDeclaredAfterMacro": false,
		"DoesBodyContainDeclRefExpr": false,
		"DoesBodyEndWithCompoundStmt": false,
		"DoesSubexpressionExpandedFromBodyHaveLocalType": false,
		"DoesSubexpressionExpandedFromBodyHaveTypeDefinedAfterMacro": false,
		"DoesAnyArgumentHaveSideEffects": false,
		"DoesAnyArgumentContainDeclRefExpr": false,
		"IsHygienic": true,
		"IsICERepresentableByInt32": true,
		"IsICERepresentableByInt16": true,
		"IsObjectLike": true,
		"IsNamePresentInCPPConditional": false,
		"IsExpansionICE": true,
		"IsExpansionTypeNull": false,
		"IsExpansionTypeAnonymous": false,
		"IsExpansionTypeLocalType": false,
		"IsExpansionTypeDefinedAfterMacro": false,
		"IsExpansionTypeVoid": false,
		"IsExpansionTypeFunctionType": false,
		"IsAnyArgumentTypeNull": false,
		"IsAnyArgumentTypeAnonymous": false,
		"IsAnyArgumentTypeLocalType": false,
		"IsAnyArgumentTypeDefinedAfterMacro": false,
		"IsAnyArgumentTypeVoid": false,
		"IsAnyArgumentTypeFunctionType": false,
		"IsInvokedWhereModifiableValueRequired": false,
		"IsInvokedWhereAddressableValueRequired": false,
		"IsAnyArgumentExpandedWhereConstExprRequired": false,
		"IsInvokedWhereICERequired": false,
		"IsInvokedWhereConstantExpressionRequired": false,
		"IsAnyArgumentExpandedWhereModifiableValueRequired": false,
		"IsAnyArgumentExpandedWhereAddressableValueRequired": false,
		"IsAnyArgumentConditionallyEvaluated": false,
		"IsAnyArgumentNeverExpanded": false,
		"IsAnyArgumentNotAnExpression": false
	}`
}

func TestIngestHappyPath(t *testing.T) {
	data := "[" + definitionRecord("FOO", "/src/foo.c:1:1") + "," + invocationRecord("FOO", "/src/foo.c:1:1", "/src/foo.c:5:1") + "]"

	pd, errs := Ingest([]byte(data), "/src")
	if errs.HasErrors() {
		t.Fatalf("Ingest() errors = %v", errs)
	}
	if len(pd.Macros) != 1 {
		t.Fatalf("len(pd.Macros) = %d, want 1", len(pd.Macros))
	}
	for m, is := range pd.Macros {
		if m.Name != "FOO" {
			t.Errorf("macro name = %q, want FOO", m.Name)
		}
		if len(is) != 1 {
			t.Errorf("len(invocations) = %d, want 1", len(is))
		}
	}
}

func TestIngestDropsNonUniqueDefinitions(t *testing.T) {
	data := "[" + definitionRecord("FOO", "/src/a.c:1:1") + "," + definitionRecord("FOO", "/src/b.c:1:1") + "]"

	pd, errs := Ingest([]byte(data), "/src")
	if errs.HasErrors() {
		t.Fatalf("Ingest() errors = %v", errs)
	}
	if len(pd.Macros) != 0 {
		t.Errorf("len(pd.Macros) = %d, want 0 (duplicate-named definitions should be dropped)", len(pd.Macros))
	}
}

func TestIngestNarrowsToSourceRoot(t *testing.T) {
	data := "[" + definitionRecord("FOO", "/other/foo.c:1:1") + "," + invocationRecord("FOO", "/other/foo.c:1:1", "/other/foo.c:5:1") + "]"

	pd, errs := Ingest([]byte(data), "/src")
	if errs.HasErrors() {
		t.Fatalf("Ingest() errors = %v", errs)
	}
	if len(pd.Macros) != 0 {
		t.Errorf("len(pd.Macros) = %d, want 0 (macro defined outside sourceRoot should be dropped)", len(pd.Macros))
	}
}

func TestIngestUnknownDefinitionLocationIsFatal(t *testing.T) {
	data := "[" + invocationRecord("FOO", "/src/foo.c:1:1", "/src/foo.c:5:1") + "]"

	_, errs := Ingest([]byte(data), "/src")
	if !errs.HasErrors() {
		t.Fatal("expected an error for an invocation with no matching definition")
	}
}

func TestIngestMissingRequiredFieldIsFatal(t *testing.T) {
	data := `[{"Kind": "Definition", "Name": "FOO"}]`

	_, errs := Ingest([]byte(data), "/src")
	if !errs.HasErrors() {
		t.Fatal("expected an error for a definition record missing required fields")
	}
	if len(errs.Diagnostics()) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}

func TestIngestMalformedJSON(t *testing.T) {
	_, errs := Ingest([]byte("not json"), "/src")
	if !errs.HasErrors() {
		t.Fatal("expected an error for malformed JSON")
	}
	if !strings.Contains(errs.Error(), "JSON array") {
		t.Errorf("Error() = %q, want it to mention the JSON array requirement", errs.Error())
	}
}

func TestIngestCollapsesDuplicateInvocationLocations(t *testing.T) {
	data := "[" +
		definitionRecord("FOO", "/src/foo.c:1:1") + "," +
		invocationRecord("FOO", "/src/foo.c:1:1", "/src/foo.c:5:1") + "," +
		invocationRecord("FOO", "/src/foo.c:1:1", "/src/foo.c:5:1") +
		"]"

	pd, errs := Ingest([]byte(data), "/src")
	if errs.HasErrors() {
		t.Fatalf("Ingest() errors = %v", errs)
	}
	for m, is := range pd.Macros {
		if len(is) != 1 {
			t.Errorf("macro %q has %d invocations, want 1 after collapsing duplicates", m.Name, len(is))
		}
	}
}

func TestIngestInspectedByCPPAndInclude(t *testing.T) {
	data := `[
		{"Kind": "InspectedByCPP", "Name": "FOO"},
		{"Kind": "Include", "IncludeName": "foo.h", "IsValid": true},
		{"Kind": "Include", "IncludeName": "bar.h", "IsValid": false}
	]`

	pd, errs := Ingest([]byte(data), "/src")
	if errs.HasErrors() {
		t.Fatalf("Ingest() errors = %v", errs)
	}
	if !pd.IsInspectedByCPP("FOO") {
		t.Error("expected FOO to be recorded as inspected by CPP")
	}
	if !pd.IsLocallyIncluded("foo.h") {
		t.Error("expected foo.h to be recorded as a local include")
	}
	if pd.IsLocallyIncluded("bar.h") {
		t.Error("an invalid include record should not be recorded")
	}
}
