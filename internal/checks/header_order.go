package checks

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/check-tool/internal/report"
)

// HeaderOrder checks that the top-level POD headers a tool is required to
// have appear in canonical order.
type HeaderOrder struct {
	deps Deps
}

func (HeaderOrder) Name() string { return "header-order" }

func (c HeaderOrder) Run(ctx context.Context, tool *Tool, rep *report.Reporter) error {
	lines, err := c.deps.searcher().Lines(ctx, `^=head1`, tool.Path)
	if err != nil {
		return errors.Wrap(err, "search headers")
	}
	var headers []string
	for _, line := range lines {
		name := strings.TrimLeft(strings.TrimPrefix(line, "=head1"), " \t")
		if trimmed := strings.TrimRight(name, " \t\r"); trimmed != name {
			rep.Violation("%s has trailing whitespace in header %q", tool.Name, name)
			name = trimmed
		}
		headers = append(headers, name)
	}
	if rows := misordered(headers, c.deps.Rules.Headers(tool.Name)); len(rows) > 0 {
		rep.Compare(tool.Name+" has headers out of order:", rows)
	}
	return nil
}

// misordered keeps the actual headers that appear in required, then compares
// them position by position with required. From the first mismatch on it
// returns a row for every remaining required position; a missing actual
// header compares as "".
func misordered(actual, required []string) []report.Row {
	want := make(map[string]struct{}, len(required))
	for _, h := range required {
		want[h] = struct{}{}
	}
	var got []string
	for _, h := range actual {
		if _, ok := want[h]; ok {
			got = append(got, h)
		}
	}

	at := func(i int) string {
		if i < len(got) {
			return got[i]
		}
		return ""
	}
	for i := range required {
		if at(i) == required[i] {
			continue
		}
		rows := make([]report.Row, 0, len(required)-i)
		for j := i; j < len(required); j++ {
			rows = append(rows, report.Row{Actual: at(j), Correct: required[j]})
		}
		return rows
	}
	return nil
}
