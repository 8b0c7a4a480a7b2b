// Package stats accumulates classification outcomes and renders the
// totals, per-kind breakdowns, and row-per-macro CSV report spec.md §4.4
// and §6 describe.
package stats

import (
	"github.com/appleseedlab/merc/classify"
	"github.com/appleseedlab/merc/facts"
)

// MacroKind distinguishes object-like from function-like macros in the
// accumulator's key, mirroring translationstats.py's split between
// ObjectLikeStats and FunctionLikeStats.
type MacroKind int

const (
	ObjectLike MacroKind = iota
	FunctionLike
)

func (k MacroKind) String() string {
	if k == ObjectLike {
		return "ObjectLike"
	}
	return "FunctionLike"
}

func kindOf(m facts.Macro) MacroKind {
	if m.IsObjectLike {
		return ObjectLike
	}
	return FunctionLike
}

// Row is one macro's entry in the record set, holding everything the CSV
// report and the human-readable summary need.
type Row struct {
	Macro           facts.Macro
	Kind            MacroKind
	Outcome         classify.Outcome
	Translation     string
	InvocationCount int
}

// kindCounts breaks classification outcomes down by target/reason within
// one MacroKind, the same fields translationstats.py's ObjectLikeStats
// and FunctionLikeStats track.
type kindCounts struct {
	translatedByTarget map[classify.Target]int
	rejectedByReason   map[classify.Reason]int
}

func newKindCounts() *kindCounts {
	return &kindCounts{
		translatedByTarget: make(map[classify.Target]int),
		rejectedByReason:   make(map[classify.Reason]int),
	}
}

func (k *kindCounts) translated() int {
	n := 0
	for _, c := range k.translatedByTarget {
		n += c
	}
	return n
}

func (k *kindCounts) rejected() int {
	n := 0
	for _, c := range k.rejectedByReason {
		n += c
	}
	return n
}

// technicalSkips returns the subset of rejected() caused by the
// technical-limitation gate (spec.md §4.2.5), kept separate so
// downstream tooling can tell "semantically cannot be translated" apart
// from "analyzer limitation" (spec.md §4.4).
func (k *kindCounts) technicalSkips() int {
	n := 0
	for reason, c := range k.rejectedByReason {
		if reason.IsTechnicalLimitation() {
			n += c
		}
	}
	return n
}

// Accumulator records every classification outcome, keyed by (macro
// kind, outcome variant), and keeps the per-macro rows needed for the
// CSV export.
type Accumulator struct {
	rows  []Row
	kinds map[MacroKind]*kindCounts
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		kinds: map[MacroKind]*kindCounts{
			ObjectLike:   newKindCounts(),
			FunctionLike: newKindCounts(),
		},
	}
}

// Record adds one macro's classification outcome.
func (a *Accumulator) Record(m facts.Macro, outcome classify.Outcome, translation string, invocationCount int) {
	kind := kindOf(m)
	counts := a.kinds[kind]
	if outcome.Translated {
		counts.translatedByTarget[outcome.Target]++
	} else {
		counts.rejectedByReason[outcome.Reason]++
	}
	a.rows = append(a.rows, Row{
		Macro:           m,
		Kind:            kind,
		Outcome:         outcome,
		Translation:     translation,
		InvocationCount: invocationCount,
	})
}

// Rows returns every recorded row, one per macro.
func (a *Accumulator) Rows() []Row {
	return a.rows[:]
}

// TotalTranslated returns the number of macros translated across both
// kinds.
func (a *Accumulator) TotalTranslated() int {
	return a.kinds[ObjectLike].translated() + a.kinds[FunctionLike].translated()
}

// TotalSkipped returns the number of macros rejected across both kinds.
// translated() + skipped() == macros classified, the stat-totals
// invariant from spec.md §8.
func (a *Accumulator) TotalSkipped() int {
	return a.kinds[ObjectLike].rejected() + a.kinds[FunctionLike].rejected()
}

// TotalTechnicalSkips returns the subset of TotalSkipped caused by the
// technical-limitation gate rather than a semantic rejection.
func (a *Accumulator) TotalTechnicalSkips() int {
	return a.kinds[ObjectLike].technicalSkips() + a.kinds[FunctionLike].technicalSkips()
}

// TranslatedByTarget returns the count of macros of kind translated to
// target.
func (a *Accumulator) TranslatedByTarget(kind MacroKind, target classify.Target) int {
	return a.kinds[kind].translatedByTarget[target]
}

// RejectedByReason returns the count of macros of kind rejected for
// reason.
func (a *Accumulator) RejectedByReason(kind MacroKind, reason classify.Reason) int {
	return a.kinds[kind].rejectedByReason[reason]
}
