package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/agentflare-ai/check-tool/internal/checks"
	"github.com/agentflare-ai/check-tool/internal/exttool"
	"github.com/agentflare-ai/check-tool/internal/report"
	"github.com/agentflare-ai/check-tool/internal/rules"
)

// errFailed means violations or failures were already reported.
var errFailed = errors.New("checks failed")

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
	checks []checks.Check
}

func run(argv []string, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, loadSettings().debug)
	app, err := newApp(stdout, stderr, exttool.ExecRunner{Logger: logger}, logger)
	if err != nil {
		return err
	}
	return app.execute(context.Background(), argv)
}

func newApp(stdout, stderr io.Writer, runner exttool.Runner, logger zerolog.Logger) (*cliApp, error) {
	r, err := rules.Default()
	if err != nil {
		return nil, err
	}
	return &cliApp{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		checks: checks.All(checks.Deps{Rules: r, Runner: runner, Logger: logger}),
	}, nil
}

func (app *cliApp) execute(ctx context.Context, argv []string) error {
	cmd := newRootCmd(app)
	cmd.SetArgs(argv)
	return cmd.ExecuteContext(ctx)
}

func (app *cliApp) checkFiles(ctx context.Context, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	failed := false
	for _, path := range paths {
		if !app.checkFile(ctx, path) {
			failed = true
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// checkFile runs every check against one file and reports whether all of
// them passed.
func (app *cliApp) checkFile(ctx context.Context, path string) bool {
	tool, err := loadTool(path)
	if err != nil {
		fmt.Fprintln(app.stderr, err)
		return false
	}

	ok := true
	rep := report.New(app.stdout)
	for _, c := range app.checks {
		if err := app.runCheck(ctx, c, tool, rep); err != nil {
			fmt.Fprintf(app.stderr, "%s %s: %v\n", tool.Name, c.Name(), err)
			ok = false
		}
	}
	return ok && !rep.Failed()
}

func (app *cliApp) runCheck(ctx context.Context, c checks.Check, tool *checks.Tool, rep *report.Reporter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	app.logger.Debug().Str("tool", tool.Name).Str("check", c.Name()).Msg("running check")
	return c.Run(ctx, tool, rep)
}

func loadTool(path string) (*checks.Tool, error) {
	name, err := checks.ToolName(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve %s", path)
	}
	return &checks.Tool{Name: name, Path: path, AbsPath: abs, Text: string(data)}, nil
}
