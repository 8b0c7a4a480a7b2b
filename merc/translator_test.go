package merc

import (
	"testing"

	"github.com/appleseedlab/merc/classify"
	"github.com/appleseedlab/merc/config"
	"github.com/appleseedlab/merc/facts"
)

func TestTranslateRendersAcceptedMacros(t *testing.T) {
	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config.New() error = %v", err)
	}

	m := facts.Macro{Name: "FOO", IsObjectLike: true, IsDefinedAtGlobalScope: true}
	i := facts.Invocation{
		InvocationLocation:          "foo.c:5:1",
		IsInvocationLocationValid:   true,
		IsDefinitionLocationValid:   true,
		NumASTRoots:                 1,
		HasAlignedArguments:         true,
		ASTKind:                     facts.KindExpr,
		TypeSignature:               "int x",
		DoesBodyEndWithCompoundStmt: false,
	}

	pd := facts.NewPreprocessorData()
	pd.Macros[m] = map[string]facts.Invocation{i.InvocationLocation: i}

	tr := New(cfg)
	results, acc := tr.Translate(pd)

	result, ok := results[m]
	if !ok {
		t.Fatal("FOO missing from results")
	}
	if !result.Translated || result.Target != classify.GlobalVariable {
		t.Errorf("result = %+v, want Translated GlobalVariable", result)
	}
	if acc.TotalTranslated() != 1 {
		t.Errorf("TotalTranslated() = %d, want 1", acc.TotalTranslated())
	}

	translations := Translations(results)
	if _, ok := translations[m]; !ok {
		t.Error("Translations() dropped an accepted macro")
	}
}

func TestTranslateRecordsRejections(t *testing.T) {
	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config.New() error = %v", err)
	}

	m := facts.Macro{Name: "FOO", IsDefinedAtGlobalScope: true}
	pd := facts.NewPreprocessorData()
	pd.Macros[m] = map[string]facts.Invocation{}

	tr := New(cfg)
	results, acc := tr.Translate(pd)

	if results[m].Translated {
		t.Error("a macro with no invocations should not translate")
	}
	if acc.TotalSkipped() != 1 {
		t.Errorf("TotalSkipped() = %d, want 1", acc.TotalSkipped())
	}
	if len(Translations(results)) != 0 {
		t.Error("Translations() should drop rejected macros")
	}
}
