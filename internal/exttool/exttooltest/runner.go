// Package exttooltest provides a fake exttool.Runner for tests. It serves
// canned results per program and emulates grep in process, so tests never
// start real processes.
package exttooltest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/agentflare-ai/check-tool/internal/exttool"
)

// Runner is a scripted exttool.Runner.
type Runner struct {
	// Results maps a program's base name to the result it returns.
	Results map[string]exttool.Result
	// Errors maps a program's base name to a start failure.
	Errors map[string]error
	// Paths lists the programs LookPath can find.
	Paths map[string]string

	mu    sync.Mutex
	calls [][]string
}

var _ exttool.Runner = (*Runner)(nil)

// Run implements exttool.Runner.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (exttool.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{name}, args...))
	r.mu.Unlock()

	base := filepath.Base(name)
	if err, ok := r.Errors[base]; ok {
		return exttool.Result{}, err
	}
	if res, ok := r.Results[base]; ok {
		return res, nil
	}
	if base == "grep" {
		return grep(args)
	}
	return exttool.Result{}, fmt.Errorf("exttooltest: no result scripted for %s", base)
}

// LookPath implements exttool.Runner.
func (r *Runner) LookPath(name string) (string, error) {
	if p, ok := r.Paths[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// Calls returns every invocation seen so far, program first.
func (r *Runner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Called reports whether the program with the given base name was run.
func (r *Runner) Called(base string) bool {
	for _, c := range r.Calls() {
		if filepath.Base(c[0]) == base {
			return true
		}
	}
	return false
}

// grep understands the subset of flags exttool.Searcher passes:
// -E, -c and -e PATTERN, then "--" and a single file.
func grep(args []string) (exttool.Result, error) {
	var (
		count   bool
		pattern string
		file    string
	)
	for i := 0; i < len(args); i++ {
		if file != "" {
			break
		}
		switch args[i] {
		case "-E":
		case "-c":
			count = true
		case "-e":
			i++
			if i < len(args) {
				pattern = args[i]
			}
		case "--":
			if i+1 < len(args) {
				file = args[i+1]
			}
		default:
			file = args[i]
		}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return exttool.Result{Output: "grep: " + err.Error(), ExitCode: 2}, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return exttool.Result{Output: "grep: " + err.Error(), ExitCode: 2}, nil
	}

	var matched []string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if re.MatchString(line) {
			matched = append(matched, line)
		}
	}
	res := exttool.Result{}
	if len(matched) == 0 {
		res.ExitCode = 1
	}
	if count {
		res.Output = fmt.Sprintf("%d\n", len(matched))
		return res, nil
	}
	if len(matched) > 0 {
		res.Output = strings.Join(matched, "\n") + "\n"
	}
	return res, nil
}
