package checks

import (
	"context"
	"slices"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/check-tool/internal/pod"
	"github.com/agentflare-ai/check-tool/internal/report"
)

// OptionOrder verifies the option entries of the OPTIONS section, and of each
// subsection beneath it, are listed in lexical order.
type OptionOrder struct{}

func (OptionOrder) Name() string { return "option-order" }

func (c OptionOrder) Run(_ context.Context, tool *Tool, rep *report.Reporter) error {
	sec := pod.Find(pod.Sections(pod.Commands(tool.Text)), "OPTIONS")
	if sec == nil {
		return errors.New("no OPTIONS section")
	}
	c.checkSection(tool, sec, rep)
	return nil
}

func (c OptionOrder) checkSection(tool *Tool, sec *pod.Section, rep *report.Reporter) {
	if rows := unsorted(sec.Options); len(rows) > 0 {
		rep.Compare(tool.Name+" has unsorted options in "+sec.Name+":", rows)
	}
	for _, sub := range sec.Subsections {
		c.checkSection(tool, sub, rep)
	}
}

// unsorted compares names against their sorted order and returns a row for
// every differing index from the first divergence on.
func unsorted(names []string) []report.Row {
	sorted := slices.Clone(names)
	slices.Sort(sorted)

	first := -1
	for i := range names {
		if names[i] != sorted[i] {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}
	var rows []report.Row
	for i := first; i < len(names); i++ {
		if names[i] != sorted[i] {
			rows = append(rows, report.Row{Actual: names[i], Correct: sorted[i]})
		}
	}
	return rows
}
