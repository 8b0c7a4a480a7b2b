package stats

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/stoewer/go-strcase"

	"github.com/appleseedlab/merc/classify"
)

var csvHeader = []string{
	"Program Name", "Macro", "Macro Type", "Action",
	"Translation or Macro Body", "Action Type", "Invocation Amount",
}

// outcomeTag names the outcome variant — a Target for a translation, a
// Reason for a rejection — in the lower_snake_case form the CSV's
// "Action Type" column uses, the same role stoewer/go-strcase plays
// wherever a CamelCase Go identifier needs a wire-friendly spelling.
func outcomeTag(o classify.Outcome) string {
	if o.Translated {
		return strcase.SnakeCase(o.Target.String())
	}
	return strcase.SnakeCase(o.Reason.String())
}

// WriteCSV writes one row per macro to w, per the column order spec.md
// §6 names.
func WriteCSV(w io.Writer, programName string, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range rows {
		action := "Skipped"
		body := row.Macro.Body
		if row.Outcome.Translated {
			action = "Translated"
			body = row.Translation
		}
		record := []string{
			programName,
			row.Macro.Name,
			row.Kind.String(),
			action,
			body,
			outcomeTag(row.Outcome),
			strconv.Itoa(row.InvocationCount),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	return cw.Error()
}
