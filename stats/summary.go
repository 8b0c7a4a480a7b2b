package stats

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// WriteSummary prints the human-readable run summary to w, with
// thousands-grouped counts the way a CLI report reads naturally once a
// run covers a large codebase's worth of macros.
func WriteSummary(w io.Writer, a *Accumulator) error {
	p := message.NewPrinter(language.English)

	_, err := p.Fprintf(w, "Total translated: %v\nTotal skipped: %v\n  - Technical limitation skips: %v\n",
		number.Decimal(a.TotalTranslated()), number.Decimal(a.TotalSkipped()), number.Decimal(a.TotalTechnicalSkips()))
	if err != nil {
		return err
	}

	for _, kind := range []MacroKind{ObjectLike, FunctionLike} {
		counts := a.kinds[kind]
		if _, err := fmt.Fprintf(w, "%s: translated %d, skipped %d\n", kind, counts.translated(), counts.rejected()); err != nil {
			return err
		}
	}
	return nil
}
