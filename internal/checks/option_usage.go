package checks

import (
	"context"
	"fmt"
	"regexp"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/check-tool/internal/pod"
	"github.com/agentflare-ai/check-tool/internal/report"
)

// Patterns of the OptionParser calls that read an option value.
var optionReadPatterns = []string{
	`get\(['"]%s['"]\)`,
	`got\(['"]%s['"]\)`,
}

var dsnParseCall = regexp.MustCompile(`parse_options\(`)

// OptionUsage reports documented options the tool never reads and checks the
// tool's main package parses the standard DSN options.
type OptionUsage struct {
	deps Deps
}

func (OptionUsage) Name() string { return "option-usage" }

func (c OptionUsage) Run(ctx context.Context, tool *Tool, rep *report.Reporter) error {
	var unused []string
	for _, opt := range pod.DocumentedOptions(tool.Text) {
		if c.deps.Rules.IgnoredOption(opt) {
			continue
		}
		n, err := c.reads(ctx, tool, opt)
		if err != nil {
			return err
		}
		if n == 0 {
			unused = append(unused, "--"+opt)
		}
	}
	if len(unused) > 0 {
		rep.List(tool.Name+" has unused options:", unused)
	}

	if !c.deps.Rules.RequiresDSN(tool.Name) {
		return nil
	}
	pkg := tool.PackageName()
	region, ok := mainPackage(tool.Text, pkg)
	if !ok {
		return errors.Errorf("cannot find package %s", pkg)
	}
	if !dsnParseCall.MatchString(region) {
		rep.Violation("%s does not call parse_options() in package %s", tool.Name, pkg)
	}
	return nil
}

func (c OptionUsage) reads(ctx context.Context, tool *Tool, opt string) (int, error) {
	q := regexp.QuoteMeta(opt)
	total := 0
	for _, p := range optionReadPatterns {
		n, err := c.deps.searcher().Count(ctx, fmt.Sprintf(p, q), tool.Path)
		if err != nil {
			return 0, errors.Wrapf(err, "search for --%s", opt)
		}
		total += n
	}
	return total, nil
}

// mainPackage returns the text from the "package NAME;" line to the end.
func mainPackage(text, name string) (string, bool) {
	re := regexp.MustCompile(`(?m)^package[ \t]+` + regexp.QuoteMeta(name) + `[ \t]*;`)
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:], true
}
