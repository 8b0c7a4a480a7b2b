// Package merc is the facade over ingest, classify, emit, and stats: the
// public entry point a CLI or another Go program drives to turn analyzer
// facts into translations, the same role the teacher's top-level cel
// package plays over checker/parser/interpreter.
package merc

import (
	"github.com/appleseedlab/merc/classify"
	"github.com/appleseedlab/merc/config"
	"github.com/appleseedlab/merc/emit"
	"github.com/appleseedlab/merc/facts"
	"github.com/appleseedlab/merc/stats"
)

// Translator classifies and translates every macro in a
// facts.PreprocessorData value under one configuration.
type Translator struct {
	cfg config.Config
}

// New returns a Translator configured by cfg.
func New(cfg config.Config) *Translator {
	return &Translator{cfg: cfg}
}

// Result is one macro's final disposition: either Text holds the
// rendered replacement (Translated is true), or Reason explains why it
// was left alone.
type Result struct {
	Translated bool
	Text       string
	Target     classify.Target
	Reason     classify.Reason
}

// Translate classifies every macro in pd and renders a replacement for
// each one classify.Classify accepts. It returns both the per-macro
// results and the accumulated statistics, mirroring
// MacroTranslator.generate_macro_translations from the Python original.
func (t *Translator) Translate(pd facts.PreprocessorData) (map[facts.Macro]Result, *stats.Accumulator) {
	results := make(map[facts.Macro]Result, len(pd.Macros))
	acc := stats.NewAccumulator()

	for m, invSet := range pd.Macros {
		invocations := make([]facts.Invocation, 0, len(invSet))
		for _, i := range invSet {
			invocations = append(invocations, i)
		}

		outcome := classify.Classify(m, invocations, pd, t.cfg)

		var text string
		if outcome.Translated {
			sig := ""
			if len(invocations) > 0 {
				sig = invocations[0].TypeSignature
			}
			text = emit.Render(m, sig, outcome.Target)
		}

		results[m] = Result{
			Translated: outcome.Translated,
			Text:       text,
			Target:     outcome.Target,
			Reason:     outcome.Reason,
		}
		acc.Record(m, outcome, text, len(invocations))
	}

	return results, acc
}

// Translations returns the subset of results that were translated, keyed
// by macro, ready to hand to overlay.Writer.ApplyAll.
func Translations(results map[facts.Macro]Result) map[facts.Macro]string {
	out := make(map[facts.Macro]string)
	for m, r := range results {
		if r.Translated {
			out[m] = r.Text
		}
	}
	return out
}
