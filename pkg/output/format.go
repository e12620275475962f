// Package output provides utilities for formatting and displaying planning reports.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/runner"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report *runner.Report) {
	p := message.NewPrinter(language.English)

	if b := report.Bundle; b != nil {
		_, _ = fmt.Fprintf(w, "--- Bundle for %s ---\n", report.TargetID)
		_, _ = p.Fprintf(w, "Target %.2f | Achieved %.2f | Met %s\n", b.TargetReward, b.AchievedReward, yesNo(b.TargetMet))
		_, _ = fmt.Fprintf(w, "Symbol | Units | Reward | Cost\n")
		_, _ = fmt.Fprintf(w, "______ | _____ | ______ | ____\n")
		for _, row := range b.Rows {
			_, _ = p.Fprintf(w, "%s | %s | %.2f | %s\n", row.Symbol, format.Quantity(row.Units), row.RewardAchieved, format.Currency(row.CostIncurred))
		}
		_, _ = fmt.Fprintf(w, "Total cost %s | Secondary %s\n", format.Currency(b.TotalCost), format.Quantity(b.TotalSecondaryCost))
	}

	if l := report.Layout; l != nil {
		if report.Bundle != nil {
			_, _ = fmt.Fprintf(w, "\n")
		}
		_, _ = fmt.Fprintf(w, "--- Layout ---\n")
		_, _ = fmt.Fprintf(w, "Slot | Batch | Candidate | Cost\n")
		_, _ = fmt.Fprintf(w, "____ | _____ | _________ | ____\n")
		for _, a := range l.Assignments {
			_, _ = fmt.Fprintf(w, "%d | %d | %s | %s\n", a.SlotGroupIndex, a.BatchSize, a.CandidateIdentifier, format.Currency(a.CostIncurred))
		}
		_, _ = fmt.Fprintf(w, "Budget %s | Spent %s | Remaining %s | Unassigned batches %d | Complete %s\n",
			format.Currency(l.StartingBudget), format.Currency(l.Spent), format.Currency(l.RemainingBudget), l.UnassignedBatches, yesNo(l.Complete()))
	}

	for _, warning := range report.Warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

// CsvFormat writes the report in comma-separated value format.
func CsvFormat(w io.Writer, report *runner.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "index", "item", "quantity", "reward", "cost"}); err != nil {
		return err
	}

	if b := report.Bundle; b != nil {
		for i, row := range b.Rows {
			record := []string{
				"bundle",
				strconv.Itoa(i),
				row.Symbol,
				format.NumericQuantity(row.Units),
				format.NumericQuantity(row.RewardAchieved),
				format.NumericCurrency(row.CostIncurred),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	if l := report.Layout; l != nil {
		for _, a := range l.Assignments {
			record := []string{
				"layout",
				strconv.Itoa(a.SlotGroupIndex),
				a.CandidateIdentifier,
				strconv.Itoa(a.BatchSize),
				"",
				format.NumericCurrency(a.CostIncurred),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of the report as a string.
func CsvString(report *runner.Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the report as indented JSON.
func JSONFormat(w io.Writer, report *runner.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
