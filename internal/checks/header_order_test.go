package checks

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/check-tool/internal/exttool/exttooltest"
	"github.com/agentflare-ai/check-tool/internal/report"
)

var canonicalHeaders = []string{
	"NAME", "SYNOPSIS", "RISKS", "DESCRIPTION", "OPTIONS", "ENVIRONMENT",
	"SYSTEM REQUIREMENTS", "BUGS", "DOWNLOADING", "AUTHORS",
	"ABOUT PERCONA TOOLKIT", "COPYRIGHT, LICENSE, AND WARRANTY", "VERSION",
}

func podWithHeaders(headers ...string) string {
	var b strings.Builder
	b.WriteString("#!/usr/bin/perl\n\n")
	for _, h := range headers {
		b.WriteString("=head1 " + h + "\n\nSome text.\n\n=head2 Nested\n\n")
	}
	b.WriteString("=cut\n")
	return b.String()
}

func runHeaderOrder(t *testing.T, tool, text string) string {
	t.Helper()
	rep, buf := newReporter()
	c := HeaderOrder{deps: newDeps(t, &exttooltest.Runner{})}
	require.NoError(t, c.Run(context.Background(), newTool(t, tool, text), rep))
	assert.Equal(t, buf.Len() > 0, rep.Failed())
	return buf.String()
}

func TestHeaderOrderCanonical(t *testing.T) {
	assert.Empty(t, runHeaderOrder(t, "pt-sample", podWithHeaders(canonicalHeaders...)))
}

func TestHeaderOrderIgnoresUnknownHeaders(t *testing.T) {
	hs := append([]string{"NAME", "SYNOPSIS", "TUTORIAL"}, canonicalHeaders[2:]...)
	hs = append(hs, "SEE ALSO")
	assert.Empty(t, runHeaderOrder(t, "pt-sample", podWithHeaders(hs...)))
}

func TestHeaderOrderMissingDescription(t *testing.T) {
	var hs []string
	for _, h := range canonicalHeaders {
		if h != "DESCRIPTION" {
			hs = append(hs, h)
		}
	}
	out := runHeaderOrder(t, "pt-sample", podWithHeaders(hs...))
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(out, "pt-sample has headers out of order:\n"))

	var first string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "DESCRIPTION") {
			first = line
			break
		}
	}
	// DESCRIPTION's slot holds the next header found
	assert.Contains(t, first, "OPTIONS")
	assert.Less(t, strings.Index(first, "OPTIONS"), strings.Index(first, "DESCRIPTION"))
}

func TestHeaderOrderTrailingWhitespace(t *testing.T) {
	text := strings.Replace(podWithHeaders(canonicalHeaders...), "=head1 OPTIONS\n", "=head1 OPTIONS  \n", 1)
	out := runHeaderOrder(t, "pt-sample", text)
	assert.Equal(t, "pt-sample has trailing whitespace in header \"OPTIONS  \"\n", out)
}

func TestHeaderOrderException(t *testing.T) {
	var hs []string
	for _, h := range canonicalHeaders {
		if h != "RISKS" {
			hs = append(hs, h)
		}
	}
	assert.Empty(t, runHeaderOrder(t, "pt-summary", podWithHeaders(hs...)))
	assert.NotEmpty(t, runHeaderOrder(t, "pt-kill", podWithHeaders(hs...)))
}

func TestMisordered(t *testing.T) {
	required := []string{"NAME", "SYNOPSIS", "DESCRIPTION", "OPTIONS"}
	tests := []struct {
		name   string
		actual []string
		want   []report.Row
	}{
		{name: "exact", actual: []string{"NAME", "SYNOPSIS", "DESCRIPTION", "OPTIONS"}},
		{name: "extra headers ignored", actual: []string{"NAME", "EXTRA", "SYNOPSIS", "DESCRIPTION", "OPTIONS", "MORE"}},
		{
			name:   "swapped",
			actual: []string{"NAME", "DESCRIPTION", "SYNOPSIS", "OPTIONS"},
			want: []report.Row{
				{Actual: "DESCRIPTION", Correct: "SYNOPSIS"},
				{Actual: "SYNOPSIS", Correct: "DESCRIPTION"},
				{Actual: "OPTIONS", Correct: "OPTIONS"},
			},
		},
		{
			name:   "missing in the middle",
			actual: []string{"NAME", "SYNOPSIS", "OPTIONS"},
			want: []report.Row{
				{Actual: "OPTIONS", Correct: "DESCRIPTION"},
				{Actual: "", Correct: "OPTIONS"},
			},
		},
		{
			name:   "missing at the end",
			actual: []string{"NAME", "SYNOPSIS", "DESCRIPTION"},
			want:   []report.Row{{Actual: "", Correct: "OPTIONS"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, misordered(tt.actual, required))
		})
	}
}
