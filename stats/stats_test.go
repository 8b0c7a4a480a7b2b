package stats

import (
	"testing"

	"github.com/appleseedlab/merc/classify"
	"github.com/appleseedlab/merc/facts"
)

func TestAccumulatorRecordAndTotals(t *testing.T) {
	a := NewAccumulator()

	objLike := facts.Macro{Name: "FOO", IsObjectLike: true}
	funcLike := facts.Macro{Name: "MAX", IsObjectLike: false}

	a.Record(objLike, classify.Translate(classify.GlobalVariable), "static const int FOO = 1;", 2)
	a.Record(funcLike, classify.Reject(classify.CalledByName), "", 1)
	a.Record(funcLike, classify.Reject(classify.DefinitionHasFunctionPointer), "", 1)

	if got := a.TotalTranslated(); got != 1 {
		t.Errorf("TotalTranslated() = %d, want 1", got)
	}
	if got := a.TotalSkipped(); got != 2 {
		t.Errorf("TotalSkipped() = %d, want 2", got)
	}
	if got := a.TotalTechnicalSkips(); got != 1 {
		t.Errorf("TotalTechnicalSkips() = %d, want 1", got)
	}
	if got := a.TranslatedByTarget(ObjectLike, classify.GlobalVariable); got != 1 {
		t.Errorf("TranslatedByTarget(ObjectLike, GlobalVariable) = %d, want 1", got)
	}
	if got := a.RejectedByReason(FunctionLike, classify.CalledByName); got != 1 {
		t.Errorf("RejectedByReason(FunctionLike, CalledByName) = %d, want 1", got)
	}
	if got := len(a.Rows()); got != 3 {
		t.Errorf("len(Rows()) = %d, want 3", got)
	}
}

func TestKindOf(t *testing.T) {
	if kindOf(facts.Macro{IsObjectLike: true}) != ObjectLike {
		t.Error("object-like macro should map to ObjectLike")
	}
	if kindOf(facts.Macro{IsObjectLike: false}) != FunctionLike {
		t.Error("function-like macro should map to FunctionLike")
	}
}

func TestStatTotalsInvariant(t *testing.T) {
	a := NewAccumulator()
	m := facts.Macro{Name: "FOO"}
	a.Record(m, classify.Translate(classify.VoidFunction), "x", 1)
	a.Record(m, classify.Reject(classify.Polymorphic), "", 1)

	if a.TotalTranslated()+a.TotalSkipped() != len(a.Rows()) {
		t.Error("translated + skipped should equal the number of recorded rows")
	}
}
