package checks

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/check-tool/internal/report"
)

var helpOptionLine = regexp.MustCompile(`^\s*--(?:\[no\])?([A-Za-z0-9][A-Za-z0-9_-]*)(?:=([A-Za-z]))?(?:\s+-([A-Za-z?]))?(?:\s|$)`)

// HelpOption is an option as listed by a tool's --help output.
type HelpOption struct {
	Long  string
	Type  string
	Short string
}

// OptionTypes checks the type and short form --help reports for each
// standard option against the canonical table.
type OptionTypes struct {
	deps Deps
}

func (OptionTypes) Name() string { return "option-types" }

func (c OptionTypes) Run(ctx context.Context, tool *Tool, rep *report.Reporter) error {
	res, err := c.deps.Runner.Run(ctx, tool.AbsPath, "--help")
	if err != nil {
		return errors.Wrap(err, "run --help")
	}
	opts, err := ParseHelp(res.Output)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		want, ok := c.deps.Rules.Option(tool.Name, opt.Long)
		if !ok {
			continue
		}
		if opt.Type != want.Type {
			rep.Violation("%s --%s has type %s but should have type %s",
				tool.Name, opt.Long, orNone(opt.Type), orNone(want.Type))
		}
		if opt.Short != want.Short {
			rep.Violation("%s --%s has short form %s but should have short form %s",
				tool.Name, opt.Long, orNone(opt.Short), orNone(want.Short))
		}
	}
	return nil
}

// ParseHelp extracts the options listed after the "Options:" heading. The
// listing ends at the first option seen twice, which is where the help output
// starts repeating the options with their values.
func ParseHelp(out string) ([]HelpOption, error) {
	var (
		opts    []HelpOption
		seen    = make(map[string]struct{})
		started bool
	)
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if !started {
			started = strings.TrimSpace(line) == "Options:"
			continue
		}
		if !strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		m := helpOptionLine.FindStringSubmatch(line)
		if m == nil {
			return nil, errors.Errorf("cannot parse --help line %q", line)
		}
		if _, dup := seen[m[1]]; dup {
			break
		}
		seen[m[1]] = struct{}{}
		opts = append(opts, HelpOption{Long: m[1], Type: m[2], Short: m[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read --help output")
	}
	if !started {
		return nil, errors.New("no Options: heading in --help output")
	}
	return opts, nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
