// Package report writes check violations as human-readable text and remembers
// whether any were written.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Row is one line of an ACTUAL/CORRECT comparison table.
type Row struct {
	Actual  string
	Correct string
}

// Reporter writes violations to an output stream.
type Reporter struct {
	w      io.Writer
	failed bool
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Failed reports whether any violation was written.
func (r *Reporter) Failed() bool {
	return r.failed
}

// Violation writes a single formatted violation line.
func (r *Reporter) Violation(format string, args ...any) {
	r.failed = true
	fmt.Fprintf(r.w, format+"\n", args...)
}

// List writes a heading followed by one indented item per line.
func (r *Reporter) List(heading string, items []string) {
	r.failed = true
	fmt.Fprintln(r.w, heading)
	for _, it := range items {
		fmt.Fprintf(r.w, "\t%s\n", it)
	}
}

// Block writes a heading followed by verbatim text.
func (r *Reporter) Block(heading, text string) {
	r.failed = true
	fmt.Fprintln(r.w, heading)
	fmt.Fprint(r.w, text)
	if text != "" && text[len(text)-1] != '\n' {
		fmt.Fprintln(r.w)
	}
}

// Compare writes a heading followed by a two-column ACTUAL/CORRECT table.
func (r *Reporter) Compare(heading string, rows []Row) {
	r.failed = true
	fmt.Fprintln(r.w, heading)

	table := tablewriter.NewWriter(r.w)
	table.SetHeader([]string{"ACTUAL", "CORRECT"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	for _, row := range rows {
		table.Append([]string{row.Actual, row.Correct})
	}
	table.Render()
	fmt.Fprintln(r.w)
}
