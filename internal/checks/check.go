// Package checks implements the validation passes run against each tool
// file. Every pass is independent: it reads the tool's text or asks an
// external program about it, writes violations to a report.Reporter and
// returns an error only when its own result would be meaningless.
package checks

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/agentflare-ai/check-tool/internal/exttool"
	"github.com/agentflare-ai/check-tool/internal/report"
	"github.com/agentflare-ai/check-tool/internal/rules"
)

// Tool is one inspected program.
type Tool struct {
	Name    string // short name, e.g. pt-table-sync
	Path    string // path as given on the command line
	AbsPath string // absolute path, used to execute the tool
	Text    string // full file contents
}

var toolNamePattern = regexp.MustCompile(`^[a-z][a-z-]*$`)

// ToolName derives the short tool name from the base name of path.
func ToolName(path string) (string, error) {
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	if !toolNamePattern.MatchString(base) {
		return "", errors.Errorf("cannot parse tool name from %s", path)
	}
	return base, nil
}

// PackageName is the Perl package holding the tool's main code.
func (t *Tool) PackageName() string {
	return strings.ReplaceAll(t.Name, "-", "_")
}

// Check is a single validation pass.
type Check interface {
	Name() string
	Run(ctx context.Context, tool *Tool, rep *report.Reporter) error
}

// Deps are the collaborators shared by all checks.
type Deps struct {
	Rules  *rules.Rules
	Runner exttool.Runner
	Logger zerolog.Logger
}

func (d Deps) searcher() exttool.Searcher {
	return exttool.Searcher{Runner: d.Runner}
}

// All returns every check in the order they run.
func All(deps Deps) []Check {
	return []Check{
		OptionOrder{},
		ModuleUsage{deps: deps},
		OptionTypes{deps: deps},
		HeaderOrder{deps: deps},
		PodFormatting{deps: deps},
		OptionUsage{deps: deps},
	}
}
