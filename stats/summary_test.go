package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/appleseedlab/merc/classify"
	"github.com/appleseedlab/merc/facts"
)

func TestWriteSummary(t *testing.T) {
	acc := NewAccumulator()
	acc.Record(facts.Macro{Name: "FOO", IsObjectLike: true}, classify.Translate(classify.GlobalVariable), "", 1)
	acc.Record(facts.Macro{Name: "MAX"}, classify.Reject(classify.CalledByName), "", 1)
	acc.Record(facts.Macro{Name: "BAR"}, classify.Reject(classify.DefinitionHasFunctionPointer), "", 1)

	var buf bytes.Buffer
	if err := WriteSummary(&buf, acc); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Total translated: 1",
		"Total skipped: 2",
		"Technical limitation skips: 1",
		"ObjectLike: translated 1, skipped 0",
		"FunctionLike: translated 0, skipped 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q; got:\n%s", want, out)
		}
	}
}
