package checks

import (
	"context"
	"regexp"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/check-tool/internal/report"
	"github.com/agentflare-ai/check-tool/internal/rules"
)

var declaredModule = regexp.MustCompile(`(?m)^# ([A-Za-z_][A-Za-z0-9_]*(?:::[A-Za-z0-9_]+)*) package[ \t]*$`)

// ModuleUsage reports helper modules embedded in a tool that the tool never
// uses.
type ModuleUsage struct {
	deps Deps
}

func (ModuleUsage) Name() string { return "module-usage" }

func (c ModuleUsage) Run(ctx context.Context, tool *Tool, rep *report.Reporter) error {
	var unused []string
	for _, mod := range DeclaredModules(tool.Text) {
		policy := c.deps.Rules.ModulePolicy(tool.Name, mod)
		used, err := c.used(ctx, tool, mod, policy)
		if err != nil {
			return err
		}
		c.deps.Logger.Debug().
			Str("tool", tool.Name).
			Str("module", mod).
			Stringer("policy", policy).
			Bool("used", used).
			Msg("module usage")
		if !used {
			unused = append(unused, mod)
		}
	}
	if len(unused) > 0 {
		rep.List(tool.Name+" has unused modules:", unused)
	}
	return nil
}

func (c ModuleUsage) used(ctx context.Context, tool *Tool, mod string, policy rules.ModulePolicy) (bool, error) {
	switch policy {
	case rules.PolicyIgnored, rules.PolicyDynamic:
		return true, nil
	case rules.PolicyNotObject:
		return c.referenced(ctx, tool, mod)
	case rules.PolicyBaseClass:
		for _, sub := range c.deps.Rules.Subclasses(mod) {
			if c.deps.Rules.ModulePolicy(tool.Name, sub) == rules.PolicyDynamic || Instantiated(tool.Text, sub) {
				return true, nil
			}
		}
		return false, nil
	default:
		return Instantiated(tool.Text, mod), nil
	}
}

// referenced counts namespace-qualified references and use statements. Any
// hit counts, including one inside a comment.
func (c ModuleUsage) referenced(ctx context.Context, tool *Tool, mod string) (bool, error) {
	q := regexp.QuoteMeta(mod)
	total := 0
	for _, pattern := range []string{q + "::", `^[[:space:]]*use ` + q + `([^A-Za-z0-9_:]|$)`} {
		n, err := c.deps.searcher().Count(ctx, pattern, tool.Path)
		if err != nil {
			return false, errors.Wrapf(err, "search for %s", mod)
		}
		total += n
	}
	return total > 0, nil
}

// DeclaredModules returns the modules announced by "# Name package" comment
// lines, in file order and without duplicates.
func DeclaredModules(text string) []string {
	seen := make(map[string]struct{})
	var mods []string
	for _, m := range declaredModule.FindAllStringSubmatch(text, -1) {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		mods = append(mods, m[1])
	}
	return mods
}

// Instantiated reports whether text constructs mod with "new Mod(",
// "new Mod;" or "Mod->new".
func Instantiated(text, mod string) bool {
	q := regexp.QuoteMeta(mod)
	re := regexp.MustCompile(`\bnew\s+` + q + `\s*[(;]|(^|[^A-Za-z0-9_:])` + q + `->new\b`)
	return re.MatchString(text)
}
