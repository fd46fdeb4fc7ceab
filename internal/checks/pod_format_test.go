package checks

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/check-tool/internal/exttool"
	"github.com/agentflare-ai/check-tool/internal/exttool/exttooltest"
	"github.com/agentflare-ai/check-tool/internal/report"
)

func TestPodFormatting(t *testing.T) {
	const podErrors = "*** ERROR: =over without closing =back at line 12 in file pt-sample\npt-sample has 1 pod syntax error.\n"
	tests := []struct {
		name    string
		render  string
		checker *string
		want    string
	}{
		{
			name:   "clean without podchecker",
			render: "NAME\n    pt-sample - demo\n",
		},
		{
			name:    "clean with podchecker",
			render:  "NAME\n",
			checker: ptr("pt-sample pod syntax OK.\n"),
		},
		{
			name:   "lines too long",
			render: "<standard input>:42: warning [p 3, 1.2i]: can't break line\n",
			want:   "pt-sample has lines too long\n",
		},
		{
			name:    "syntax errors",
			render:  "NAME\n",
			checker: ptr(podErrors),
			want:    "pt-sample has POD errors:\n" + podErrors,
		},
		{
			name:    "both",
			render:  "can't break line",
			checker: ptr(podErrors),
			want:    "pt-sample has lines too long\npt-sample has POD errors:\n" + podErrors,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &exttooltest.Runner{Results: map[string]exttool.Result{
				"perldoc": {Output: tt.render},
			}}
			if tt.checker != nil {
				runner.Paths = map[string]string{"podchecker": "/usr/bin/podchecker"}
				runner.Results["podchecker"] = exttool.Result{Output: *tt.checker}
			}
			rep, buf := newReporter()
			c := PodFormatting{deps: newDeps(t, runner)}

			require.NoError(t, c.Run(context.Background(), newTool(t, "pt-sample", ""), rep))
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.want != "", rep.Failed())
			assert.Equal(t, tt.checker != nil, runner.Called("podchecker"))
		})
	}
}

func TestPodFormattingRendererMissing(t *testing.T) {
	runner := &exttooltest.Runner{
		Errors:  map[string]error{"perldoc": assert.AnError},
		Paths:   map[string]string{"podchecker": "/usr/bin/podchecker"},
		Results: map[string]exttool.Result{"podchecker": {Output: "x\n"}},
	}
	rep, buf := newReporter()
	c := PodFormatting{deps: newDeps(t, runner)}

	err := c.Run(context.Background(), newTool(t, "pt-sample", ""), rep)
	require.Error(t, err)
	// the syntax check still ran
	assert.Equal(t, "pt-sample has POD errors:\nx\n", buf.String())
}

func ptr(s string) *string { return &s }

func TestPodFormattingBothToolsFail(t *testing.T) {
	runner := &exttooltest.Runner{
		Errors: map[string]error{
			"perldoc":    errors.New("perldoc missing"),
			"podchecker": errors.New("podchecker crashed"),
		},
		Paths: map[string]string{"podchecker": "/usr/bin/podchecker"},
	}
	rep, buf := newReporter()
	c := PodFormatting{deps: newDeps(t, runner)}

	err := c.Run(context.Background(), newTool(t, "pt-sample", ""), rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render POD: perldoc missing")
	assert.Contains(t, err.Error(), "check POD syntax: podchecker crashed")
	assert.Empty(t, buf.String())
}

func TestPodFormattingSeparatesPathFromFlags(t *testing.T) {
	runner := &exttooltest.Runner{
		Results: map[string]exttool.Result{"perldoc": {}, "podchecker": {Output: "pod syntax OK.\n"}},
		Paths:   map[string]string{"podchecker": "/usr/bin/podchecker"},
	}
	tool := newTool(t, "pt-sample", "")
	c := PodFormatting{deps: newDeps(t, runner)}

	require.NoError(t, c.Run(context.Background(), tool, report.New(io.Discard)))
	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"perldoc", "-T", "--", tool.Path}, calls[0])
	assert.Equal(t, []string{"/usr/bin/podchecker", "--", tool.Path}, calls[1])
}
