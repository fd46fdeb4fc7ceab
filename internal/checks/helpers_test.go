package checks

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/check-tool/internal/exttool/exttooltest"
	"github.com/agentflare-ai/check-tool/internal/report"
	"github.com/agentflare-ai/check-tool/internal/rules"
)

func newTool(t *testing.T, name, text string) *Tool {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o755))
	return &Tool{Name: name, Path: path, AbsPath: path, Text: text}
}

func newDeps(t *testing.T, runner *exttooltest.Runner) Deps {
	t.Helper()
	r, err := rules.Default()
	require.NoError(t, err)
	return Deps{Rules: r, Runner: runner, Logger: zerolog.Nop()}
}

func newReporter() (*report.Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return report.New(&buf), &buf
}
