// Package exttool runs the external programs the checks depend on: the
// inspected tool itself, POD renderers and checkers, and grep.
package exttool

import (
	"bufio"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Result is the captured output of a finished process.
type Result struct {
	Output   string // stdout and stderr combined
	ExitCode int
}

// Runner runs an external program to completion.
type Runner interface {
	// Run fails only when the program could not be started; a nonzero exit
	// status is reported through Result.ExitCode.
	Run(ctx context.Context, name string, args ...string) (Result, error)
	// LookPath resolves name like a shell would.
	LookPath(name string) (string, error)
}

// ExecRunner runs programs with os/exec. There is no timeout.
type ExecRunner struct {
	Logger zerolog.Logger
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	res := Result{Output: string(out)}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return Result{}, errors.Wrapf(err, "run %s", name)
	}
	r.Logger.Debug().
		Str("cmd", name).
		Strs("args", args).
		Int("exit", res.ExitCode).
		Int("bytes", len(out)).
		Msg("external command finished")
	return res, nil
}

// LookPath implements Runner.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Searcher answers pattern queries over a file with grep. Patterns are POSIX
// extended regular expressions.
type Searcher struct {
	Runner Runner
}

// Count returns the number of lines of path matching pattern.
func (s Searcher) Count(ctx context.Context, pattern, path string) (int, error) {
	res, err := s.grep(ctx, "-c", pattern, path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(res.Output))
	if err != nil {
		return 0, errors.Wrapf(err, "grep count for %q", pattern)
	}
	return n, nil
}

// Lines returns the lines of path matching pattern, in file order.
func (s Searcher) Lines(ctx context.Context, pattern, path string) ([]string, error) {
	res, err := s.grep(ctx, "", pattern, path)
	if err != nil {
		return nil, err
	}
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(res.Output))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func (s Searcher) grep(ctx context.Context, flag, pattern, path string) (Result, error) {
	args := []string{"-E"}
	if flag != "" {
		args = append(args, flag)
	}
	args = append(args, "-e", pattern, "--", path)
	res, err := s.Runner.Run(ctx, "grep", args...)
	if err != nil {
		return Result{}, err
	}
	// grep exits 1 when nothing matched and 2 on trouble.
	if res.ExitCode > 1 {
		return Result{}, errors.Errorf("grep %q %s: exit %d: %s",
			pattern, path, res.ExitCode, strings.TrimSpace(res.Output))
	}
	return res, nil
}
